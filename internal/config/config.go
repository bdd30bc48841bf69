package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress = ":8080"
	defaultTokenTTL   = 30 * time.Minute
	defaultCodeTTL    = 10 * time.Minute
)

type Config struct {
	Env    string
	Server server
	DB     db
	Auth   auth
	Vault  vault
	Blob   blob
	SMTP   smtp
	Logger logger
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type db struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type auth struct {
	Secret   string        `env:"AUTH_SECRET"`
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL"`
	CodeTTL  time.Duration `env:"AUTH_CODE_TTL"`
}

type vault struct {
	// AdminEscrow lets admins decrypt password-protected files from the key
	// material retained on the file row. This is the documented escrow
	// policy; with it off, admin reads of password-protected files need the
	// password like everyone else's.
	AdminEscrow bool `env:"VAULT_ADMIN_ESCROW"`
}

type blob struct {
	Driver    string `env:"BLOB_DRIVER"` // local | s3
	UploadDir string `env:"BLOB_UPLOAD_DIR"`

	S3Region       string `env:"S3_REGION"`
	S3Bucket       string `env:"S3_BUCKET"`
	S3BaseEndpoint string `env:"S3_BASE_ENDPOINT"`
	S3AccessKey    string `env:"S3_ACCESS_KEY"`
	S3SecretKey    string `env:"S3_SECRET_KEY"`
}

type smtp struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func NewConfig() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	viper.SetDefault("run_address", defaultRunAddress)
	viper.SetDefault("auth_token_ttl", defaultTokenTTL)
	viper.SetDefault("auth_code_ttl", defaultCodeTTL)
	viper.SetDefault("blob_driver", "local")
	viper.SetDefault("blob_upload_dir", "uploads")
	viper.SetDefault("vault_admin_escrow", true)
	viper.SetDefault("smtp_port", 587)

	config := Config{
		Env: viper.GetString("app_env"),
		Server: server{
			RunAddress: viper.GetString("run_address"),
		},
		DB: db{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Auth: auth{
			Secret:   viper.GetString("auth_secret"),
			TokenTTL: viper.GetDuration("auth_token_ttl"),
			CodeTTL:  viper.GetDuration("auth_code_ttl"),
		},
		Vault: vault{
			AdminEscrow: viper.GetBool("vault_admin_escrow"),
		},
		Blob: blob{
			Driver:         viper.GetString("blob_driver"),
			UploadDir:      viper.GetString("blob_upload_dir"),
			S3Region:       viper.GetString("s3_region"),
			S3Bucket:       viper.GetString("s3_bucket"),
			S3BaseEndpoint: viper.GetString("s3_base_endpoint"),
			S3AccessKey:    viper.GetString("s3_access_key"),
			S3SecretKey:    viper.GetString("s3_secret_key"),
		},
		SMTP: smtp{
			Host:     viper.GetString("smtp_host"),
			Port:     viper.GetInt("smtp_port"),
			User:     viper.GetString("smtp_user"),
			Password: viper.GetString("smtp_password"),
			From:     viper.GetString("smtp_from"),
		},
		Logger: logger{LogLevel: viper.GetString("log_level")},
	}

	return &config
}
