// Package resp provides standardized HTTP response helpers for building
// consistent JSON responses in web applications.
//
// This package simplifies response handling by providing:
//   - Success and failure response builders
//   - Constructors for common HTTP errors (400, 404, 422, 500)
//   - Consistent response structure
//
// # Response Structure
//
// All responses follow a standard structure:
//
//	{
//	  "status": 200,           // HTTP status code
//	  "code": 0,               // Business error code (0 = success)
//	  "message": "ok",         // Human-readable message
//	  "data": {...},           // Response payload (on success)
//	  "errors": {...}          // Error details (on failure)
//	}
//
// # Success Responses
//
//	// Simple success with data
//	resp.Success(w, userData)
//
//	// Success with custom status code
//	resp.WithStatusCode(w, http.StatusCreated, newResource)
//
//	// Success with message only
//	resp.Success(w, "Operation completed")
//
// # Error Responses
//
//	// Pre-defined error constructors
//	resp.Fail(w, resp.NotFound("User not found"))
//	resp.Fail(w, resp.BadRequest("Invalid input", validationErrors))
//
//	// Custom error response
//	resp.Fail(w, &resp.Exception{
//	    Status:  http.StatusConflict,
//	    Code:    1001,
//	    Message: "Resource already exists",
//	    Errors:  conflictDetails,
//	})
package resp
