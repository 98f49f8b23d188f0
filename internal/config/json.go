package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		PasswordHashKey string `json:"password_hash_key"`
		HashKey         string `json:"hash_key"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN    string `json:"dsn"`
			Driver string `json:"driver"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Vault struct {
		MigrationTimeout   Duration `json:"migration_timeout"`
		MigrationBatchSize int      `json:"migration_batch_size"`
		TempPassTTL        Duration `json:"temp_pass_ttl"`
		KDF                struct {
			Time      uint32 `json:"time"`
			MemoryKiB uint32 `json:"memory_kib"`
			Threads   uint8  `json:"threads"`
		} `json:"kdf,omitempty"`
	} `json:"vault,omitempty"`

	Tracking struct {
		Window      Duration `json:"window"`
		MaxAttempts int      `json:"max_attempts"`
	} `json:"tracking,omitempty"`

	Workers struct {
		PruneInterval Duration `json:"prune_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			PasswordHashKey: jsonCfg.App.PasswordHashKey,
			HashKey:         jsonCfg.App.HashKey,
		},
		Storage: Storage{
			DB: DB{
				DSN:    jsonCfg.Storage.DB.DSN,
				Driver: jsonCfg.Storage.DB.Driver,
			},
		},
		Vault: Vault{
			MigrationTimeout:   time.Duration(jsonCfg.Vault.MigrationTimeout),
			MigrationBatchSize: jsonCfg.Vault.MigrationBatchSize,
			TempPassTTL:        time.Duration(jsonCfg.Vault.TempPassTTL),
			KDF: KDF{
				Time:      jsonCfg.Vault.KDF.Time,
				MemoryKiB: jsonCfg.Vault.KDF.MemoryKiB,
				Threads:   jsonCfg.Vault.KDF.Threads,
			},
		},
		Tracking: Tracking{
			Window:      time.Duration(jsonCfg.Tracking.Window),
			MaxAttempts: jsonCfg.Tracking.MaxAttempts,
		},
		Workers: Workers{
			PruneInterval: time.Duration(jsonCfg.Workers.PruneInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
