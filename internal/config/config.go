package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr string `yaml:"listen_addr" json:"listen_addr"`
	UploadRoot string `yaml:"upload_root" json:"upload_root"`
	StagingDir string `yaml:"staging_dir" json:"staging_dir"`
}

const (
	defaultListenAddr = ":5000"
	defaultUploadRoot = "./PhoneUploads"
	defaultStagingDir = ".incoming"
)

// Load читает YAML-конфигурацию, применяет ENV-переопределения и возвращает
// актуальную структуру. Отсутствующий файл не ошибка: дефолтов и ENV
// достаточно для запуска одиночного бинаря.
func Load() (*Config, error) {
	c := &Config{
		ListenAddr: defaultListenAddr,
		UploadRoot: defaultUploadRoot,
		StagingDir: defaultStagingDir,
	}

	path := getenv("CONFIG_PATH", "./config.yaml")
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err = yaml.Unmarshal(b, c); err != nil {
			return nil, err
		}
	}

	// ENV override
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("UPLOAD_ROOT"); v != "" {
		c.UploadRoot = v
	}
	if v := os.Getenv("STAGING_DIR"); v != "" {
		c.StagingDir = v
	}

	// Staging-каталог исключается из обхода по имени, поэтому вложенные пути
	// здесь недопустимы.
	if strings.ContainsAny(c.StagingDir, `/\`) || c.StagingDir == "" {
		return nil, fmt.Errorf("staging_dir must be a bare directory name, got %q", c.StagingDir)
	}

	return c, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
