package config

type AppConfig struct {
	FixedPoolConfig    *FixedPoolConfig
	VariablePoolConfig *VariablePoolConfig
}

func New() *AppConfig {
	return &AppConfig{
		FixedPoolConfig:    NewFixedPoolConfig(),
		VariablePoolConfig: NewVariablePoolConfig(),
	}
}
