package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	TLS_DOMAINS  = "" // e.g. "example.com,example2.com"
	MYSQL_DSN    = "" // MySQL will be used if this is set
	SQLITE_FILE  = "" // SQLite will be used if MYSQL_DSN is not configured and this is set
	BIND_ADDRESS = "0.0.0.0:8080"
	// PUBLIC_BASE_URL is the address of the public entry document. Shared album
	// links and QR codes are derived from it, e.g. "https://albums.example.com/"
	PUBLIC_BASE_URL = "http://localhost:8080/"
	// SERVER_URL is the externally visible address of this server, used to
	// build photo URLs for disk buckets. Defaults to PUBLIC_BASE_URL without
	// the trailing slash
	SERVER_URL         = ""
	TMP_DIR            = "/tmp" // Used as local scratch space in case of S3 buckets
	DEFAULT_BUCKET_DIR = ""     // Used for creating the initial disk bucket
	SESSION_KEY        = ""     // Cookie store auth key; a random one is generated if empty
	DEBUG_MODE         = true
	THUMB_SIZE         = 1280 // Longest side of photo thumbnails, in pixels
	// Initial owner account, created at startup if no users exist yet
	INITIAL_OWNER_EMAIL    = ""
	INITIAL_OWNER_PASSWORD = ""
)

func init() {
	_ = godotenv.Load()

	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("PUBLIC_BASE_URL", &PUBLIC_BASE_URL)
	readEnvString("SERVER_URL", &SERVER_URL)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvString("DEFAULT_BUCKET_DIR", &DEFAULT_BUCKET_DIR)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvInt("THUMB_SIZE", &THUMB_SIZE)
	readEnvString("INITIAL_OWNER_EMAIL", &INITIAL_OWNER_EMAIL)
	readEnvString("INITIAL_OWNER_PASSWORD", &INITIAL_OWNER_PASSWORD)

	if SERVER_URL == "" {
		SERVER_URL = strings.TrimSuffix(PUBLIC_BASE_URL, "/")
	}
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
