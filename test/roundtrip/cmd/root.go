package cmd

import (
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/zostay/go-rfc5322/message/header"
	"github.com/zostay/go-rfc5322/message/header/field"
)

var rootCmd = &cobra.Command{
	Use:   "roundtrip",
	Short: "Tools for testing header round-tripping",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(configPath, &cfg)
	},
}

// Config is read from the file named by --config.
type Config struct {
	ChunkSize  int    `toml:"chunk_size"`
	FoldLength int    `toml:"fold_length"`
	FoldIndent string `toml:"fold_indent"`
}

var (
	configPath string
	cfg        = Config{
		ChunkSize:  header.DefaultChunkSize,
		FoldLength: field.DefaultPreferredFoldLength,
		FoldIndent: field.DefaultFoldIndent,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML file with chunk_size, fold_length, and fold_indent")
}

// loadConfig reads path into c. Settings missing from the file keep their
// values. An empty path does nothing.
func loadConfig(path string, c *Config) error {
	if path == "" {
		return nil
	}
	_, err := toml.DecodeFile(path, c)
	return err
}

// foldEncoding returns the fold encoding c describes.
func (c Config) foldEncoding() (*field.FoldEncoding, error) {
	return field.NewFoldEncoding(c.FoldIndent, c.FoldLength)
}

func Execute() error {
	return rootCmd.Execute()
}
