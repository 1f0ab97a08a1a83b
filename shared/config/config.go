package config

import (
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Api                         Api           `yaml:"api" validate:"required"`
	AllowedDocumentMimeTypes    []string      `yaml:"allowed_document_mime_types" validate:"required,min=1"`
	AllowedSpreadsheetMimeTypes []string      `yaml:"allowed_spreadsheet_mime_types" validate:"required,min=1"`
	MaxAttachmentSizeBytes      int64         `yaml:"max_attachment_size_bytes" validate:"required"`
	LogLevel                    string        `yaml:"log_level"`
	LogJSON                     bool          `yaml:"log_json"`
	StubListenAddr              string        `yaml:"stub_listen_addr"`
	StubAllowedOrigins          []string      `yaml:"stub_allowed_origins"`
	FileTTL                     time.Duration `yaml:"file_ttl"`
	FileSweepInterval           time.Duration `yaml:"file_sweep_interval"`
}

// Api describes the extraction backend the composer talks to.
// The base address is configuration, never a literal, so the core stays
// transport-agnostic and testable against a fake collaborator.
type Api struct {
	BaseURL   string `yaml:"base_url" validate:"required,url"`
	PdfPath   string `yaml:"pdf_path" validate:"required"`
	ExcelPath string `yaml:"excel_path" validate:"required"`
	FilePath  string `yaml:"file_path" validate:"required"`
	FilesPath string `yaml:"files_path" validate:"required"`
}

type Private struct {
	// JwtKey signs the bearer token attached to backend calls.
	// Empty disables auth (local development against the stub).
	JwtKey string        `yaml:"jwt_key"`
	JwtTTL time.Duration `yaml:"jwt_ttl"`
}

// implementing composer wiring interfaces

func (s *Config) JwtKey() string {
	return s.private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.private.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&public); err != nil {
		panic("invalid public config: " + err.Error())
	}

	return &Config{public, private}
}
