package models

// MConfig Structure
type MConfig struct {
	Name     string         `yaml:"name"`
	Host     string         `yaml:"host"`
	Port     int            `yaml:"port"`
	LogLevel string         `yaml:"log_level"`
	GrpcHost string         `yaml:"grpc_host"`
	GrpcPort int            `yaml:"grpc_port"`
	Storage  MStorageConfig `yaml:"storage"`
	Engine   MEngineConfig  `yaml:"engine"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	RetentionDays      int    `yaml:"retention_days"`
	QueueSize          int    `yaml:"queue_size"`
}

type MEngineConfig struct {
	MaxSymbolLength        int `yaml:"max_symbol_length"`
	MaxBatchSize           int `yaml:"max_batch_size"`
	MaxMemoryMB            int `yaml:"max_memory_mb"`
	MonitorIntervalSeconds int `yaml:"monitor_interval_seconds"`
}
