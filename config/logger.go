package config

import (
	"github.com/spf13/viper"
)

// Logger represents the logging configuration.
type Logger struct {
	Level         int            `json:"level" yaml:"level"`
	Path          string         `json:"path" yaml:"path"`
	Format        string         `json:"format" yaml:"format"`
	Output        string         `json:"output" yaml:"output"`
	OutputFile    string         `json:"output_file" yaml:"output_file"`
	IndexName     string         `json:"index_name" yaml:"index_name"`
	Meilisearch   *Meilisearch   `json:"meilisearch" yaml:"meilisearch"`
	Elasticsearch *Elasticsearch `json:"elasticsearch" yaml:"elasticsearch"`
}

func getLoggerConfig(v *viper.Viper) *Logger {
	return &Logger{
		Level:      getIntDefault(v, "logger.level", 4),
		Format:     getStringDefault(v, "logger.format", "json"),
		Path:       v.GetString("logger.path"),
		Output:     getStringDefault(v, "logger.output", "stdout"),
		OutputFile: v.GetString("logger.output_file"),
		Meilisearch: &Meilisearch{
			Host:   v.GetString("logger.meilisearch.host"),
			APIKey: v.GetString("logger.meilisearch.api_key"),
		},
		Elasticsearch: &Elasticsearch{
			Addresses: v.GetStringSlice("logger.elasticsearch.addresses"),
			Username:  v.GetString("logger.elasticsearch.username"),
			Password:  v.GetString("logger.elasticsearch.password"),
		},
		IndexName: getStringDefault(v, "app_name", "facet") + "_log",
	}
}
