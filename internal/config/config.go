package config

import (
	"os"
	"strconv"
)

// Config holds environment-sourced collaborator settings. Run parameters
// (category, page range) come from flags in cmd/crawl, not from here.
type Config struct {
	// Azure Blob Storage
	AzureConnString string
	AzureContainer  string

	// SFTP (alternate upload destination)
	SFTPHost      string
	SFTPPort      int
	SFTPUser      string
	SFTPPass      string
	SFTPRemoteDir string

	// Browser
	Headless bool
}

func Load() Config {
	return Config{
		AzureConnString: os.Getenv("AZURE_STORAGE_CONNECTION_STRING"),
		AzureContainer:  getenv("AZURE_STORAGE_CONTAINER", "udemy-it"),

		SFTPHost:      os.Getenv("SFTP_HOST"),
		SFTPPort:      envInt("SFTP_PORT", 22),
		SFTPUser:      os.Getenv("SFTP_USER"),
		SFTPPass:      os.Getenv("SFTP_PASS"),
		SFTPRemoteDir: getenv("SFTP_REMOTE_DIR", "/"),

		Headless: os.Getenv("HEADLESS") == "true",
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
