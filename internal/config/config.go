package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port      string
	DBDSN     string
	UploadDir string
	LogFile   string

	// Password-reset mailer. Delivery is skipped when SMTPHost is empty.
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3007"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "shoplite.db" // sqlite file in project root
	}
	upload := os.Getenv("UPLOAD_DIR")
	if upload == "" {
		upload = "./uploads"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./shoplite.log"
	}

	smtpPort := 587
	if p := os.Getenv("SMTP_PORT"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			smtpPort = n
		}
	}
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "no-reply@shoplite.test"
	}

	cfg := Config{
		Port:      port,
		DBDSN:     dsn,
		UploadDir: upload,
		LogFile:   logFile,
		SMTPHost:  os.Getenv("SMTP_HOST"),
		SMTPPort:  smtpPort,
		SMTPUser:  os.Getenv("SMTP_USER"),
		SMTPPass:  os.Getenv("SMTP_PASS"),
		MailFrom:  from,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s UPLOAD_DIR=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.UploadDir, cfg.LogFile)
	return cfg
}
