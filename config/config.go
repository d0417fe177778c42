// Package config implements the application-level Config aggregate of
// spec.md §6: chain identity, password-hash digest, channel/thread sizing,
// local and seed network addresses, and opaque per-component params,
// loadable from JSON, binary (CBOR), or hex files. Grounded on
// original_source/src/app/config.rs's Config<D,MnP,A,StP,SvP,ClP,CP> and
// teacher's pkg/config/config.go flat-struct idiom.
package config

import (
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/certen/ledger-core/codec"
	"github.com/certen/ledger-core/meta"
	"github.com/certen/ledger-core/model"
)

// Config aggregates everything needed to stand up a ledger node: chain
// identity/version/stage, the operator password's digest, channel and
// worker sizing, the node's own and seed addresses, and opaque
// per-component parameter blobs for the manager, store, server, client,
// and application-specific custom extensions.
type Config struct {
	Chain              string       `json:"chain" yaml:"chain"`
	Version            meta.Version `json:"version" yaml:"version"`
	Stage              meta.Stage   `json:"stage" yaml:"stage"`
	PasswordHashDigest model.Digest `json:"password_hash_digest" yaml:"password_hash_digest"`
	ChannelBufferSize  uint64       `json:"channel_buffer_size" yaml:"channel_buffer_size"`
	WorkerThreadLimit  uint64       `json:"worker_thread_limit" yaml:"worker_thread_limit"`
	LocalAddresses     []string     `json:"local_addresses" yaml:"local_addresses"`
	SeedAddresses      []string     `json:"seed_addresses" yaml:"seed_addresses"`

	ManagerParams json.RawMessage `json:"manager_params,omitempty" yaml:"manager_params,omitempty"`
	StoreParams   json.RawMessage `json:"store_params,omitempty" yaml:"store_params,omitempty"`
	ServerParams  json.RawMessage `json:"server_params,omitempty" yaml:"server_params,omitempty"`
	ClientParams  json.RawMessage `json:"client_params,omitempty" yaml:"client_params,omitempty"`
	CustomParams  json.RawMessage `json:"custom_params,omitempty" yaml:"custom_params,omitempty"`
}

// Check validates the Config's own fields; opaque params blobs are left to
// whatever component consumes them.
func (c Config) Check() error {
	if err := c.Version.Check(); err != nil {
		return err
	}
	if err := c.Stage.Check(); err != nil {
		return err
	}
	if c.WorkerThreadLimit == 0 {
		return ErrInvalidWorkerThreadLimit
	}
	return nil
}

// ReadJSONFile reads and validates a Config from a JSON file.
func ReadJSONFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var c Config
	if err := codec.FromJSON(b, &c); err != nil {
		return Config{}, err
	}
	if err := c.Check(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// WriteJSONFile validates and writes c to path as JSON.
func WriteJSONFile(path string, c Config) error {
	if err := c.Check(); err != nil {
		return err
	}
	b, err := codec.ToJSON(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ReadYAMLFile reads and validates a Config from a YAML file.
func ReadYAMLFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, err
	}
	if err := c.Check(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// WriteYAMLFile validates and writes c to path as YAML.
func WriteYAMLFile(path string, c Config) error {
	if err := c.Check(); err != nil {
		return err
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ReadBinaryFile reads and validates a Config from a CBOR-encoded file.
func ReadBinaryFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var c Config
	if err := codec.FromBytes(b, &c); err != nil {
		return Config{}, err
	}
	if err := c.Check(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// WriteBinaryFile validates and writes c to path as CBOR.
func WriteBinaryFile(path string, c Config) error {
	if err := c.Check(); err != nil {
		return err
	}
	b, err := codec.ToBytes(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ReadHexFile reads and validates a Config from a hex-encoded binary
// (CBOR) file.
func ReadHexFile(path string) (Config, error) {
	hexStr, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var c Config
	if err := codec.FromHex(string(hexStr), &c); err != nil {
		return Config{}, err
	}
	if err := c.Check(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// WriteHexFile validates and writes c to path as hex-encoded binary
// (CBOR).
func WriteHexFile(path string, c Config) error {
	if err := c.Check(); err != nil {
		return err
	}
	hexStr, err := codec.ToHex(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(hexStr), 0o644)
}
