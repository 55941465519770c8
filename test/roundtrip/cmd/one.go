package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zostay/go-rfc5322/message"
	"github.com/zostay/go-rfc5322/message/header"
)

var oneCmd = &cobra.Command{
	Use:   "one message",
	Short: "Shows the diff of a single message round-trip",
	Args:  cobra.ExactArgs(1),
	RunE:  RunOne,
}

func init() {
	rootCmd.AddCommand(oneCmd)
}

// roundTrip parses in, writes it back out, and parses the output again. It
// returns the output and whether both parses found the same fields.
func roundTrip(in []byte, c Config) ([]byte, bool, error) {
	vf, err := c.foldEncoding()
	if err != nil {
		return nil, false, err
	}

	m, err := message.Parse(bytes.NewReader(in), header.WithChunkSize(c.ChunkSize))
	if err != nil {
		return nil, false, err
	}
	m.SetFoldEncoding(vf)

	out := &bytes.Buffer{}
	if _, err := m.WriteTo(out); err != nil {
		return nil, false, err
	}

	again, err := message.Parse(bytes.NewReader(out.Bytes()), header.WithChunkSize(c.ChunkSize))
	if err != nil {
		return out.Bytes(), false, err
	}

	return out.Bytes(), reflect.DeepEqual(m.Fields(), again.Fields()), nil
}

func RunOne(cmd *cobra.Command, args []string) error {
	path := args[0]
	in, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	out, same, err := roundTrip(in, cfg)
	if err != nil {
		return err
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(in), string(out), false)

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "path = %s\n", path)
	fmt.Fprintf(w, "same = %t\n", same)
	_, err = io.WriteString(w, dmp.DiffPrettyText(diffs))
	return err
}
