package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Phonetics PhoneticsConfig `yaml:"phonetics"`
	Log       LogConfig       `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// PhoneticsConfig holds the transcription engine settings: the ML toggle,
// resource file paths, and the default accent.
type PhoneticsConfig struct {
	UseML          bool   `yaml:"use_ml"           env:"PHONETICS_USE_ML"           env-default:"true"`
	DictionaryPath string `yaml:"dictionary_path"  env:"PHONETICS_DICTIONARY_PATH"  env-default:"./data/cmudict.dict"`
	ModelPath      string `yaml:"model_path"       env:"PHONETICS_MODEL_PATH"       env-default:"./data/g2p_model.gob"`
	CharMapPath    string `yaml:"char_map_path"    env:"PHONETICS_CHAR_MAP_PATH"    env-default:"./data/char_to_input.txt"`
	PhonemeMapPath string `yaml:"phoneme_map_path" env:"PHONETICS_PHONEME_MAP_PATH" env-default:"./data/index_to_ipa.txt"`
	RulesPath      string `yaml:"rules_path"       env:"PHONETICS_RULES_PATH"       env-default:"./data/phonetic_rules.json"`
	DefaultAccent  string `yaml:"default_accent"   env:"PHONETICS_DEFAULT_ACCENT"   env-default:"american"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
