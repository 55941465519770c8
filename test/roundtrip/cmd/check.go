package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"
	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-rfc5322/message/header"
	"github.com/zostay/go-rfc5322/message/header/field"
)

var checkCmd = &cobra.Command{
	Use:   "check message...",
	Short: "Compares parsed addresses and dates with other parsers",
	Args:  cobra.MinimumNArgs(1),
	RunE:  RunCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// mailboxes flattens an address list to its addr-specs. The ok result is false
// when the list holds a group.
func mailboxes(as []field.Address) ([]string, bool) {
	out := make([]string, 0, len(as))
	for _, a := range as {
		p, isPerson := a.(field.Person)
		if !isPerson {
			return nil, false
		}
		out = append(out, p.Mailbox.String())
	}
	return out, true
}

// value is the encoded value of f, without the name or line breaks.
func value(f field.Field) string {
	buf := &bytes.Buffer{}
	_, _ = field.DoNotFoldEncoding.Encode(buf, f)

	s := strings.TrimPrefix(buf.String(), f.Name()+":")
	s = strings.ReplaceAll(s, "\r\n", "")
	return strings.TrimSpace(s)
}

// checkAddresses parses each address field again with go-addr and reports
// every list where the two parsers disagree.
func checkAddresses(h *header.Header) []string {
	var problems []string
	for _, f := range h.Fields() {
		var as []field.Address
		switch f := f.(type) {
		case field.From:
			for _, p := range f.Mailboxes {
				as = append(as, p)
			}
		case field.To:
			as = f.Addresses
		case field.Cc:
			as = f.Addresses
		default:
			continue
		}

		want, ok := mailboxes(as)
		if !ok {
			continue
		}

		v := value(f)
		list, err := addr.ParseEmailAddressList(v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: go-addr cannot parse %q: %v", f.Name(), v, err))
			continue
		}

		got := make([]string, len(list))
		for i, a := range list {
			got[i] = a.Address()
		}

		if strings.Join(got, ", ") != strings.Join(want, ", ") {
			problems = append(problems, fmt.Sprintf("%s: parsed %v, go-addr found %v", f.Name(), want, got))
		}
	}
	return problems
}

// checkDate compares the Date field with dateparse.
func checkDate(h *header.Header) []string {
	if h.Date == nil {
		return nil
	}

	s := h.Date.String()
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return []string{fmt.Sprintf("Date: dateparse cannot parse %q: %v", s, err)}
	}

	if !t.Equal(h.Date.Time()) {
		return []string{fmt.Sprintf("Date: parsed %s, dateparse found %s", h.Date.Time(), t)}
	}
	return nil
}

func RunCheck(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	failed := 0
	for _, path := range args {
		in, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		h, _, err := header.Decode(bytes.NewReader(in), header.WithChunkSize(cfg.ChunkSize))
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", path, err)
			failed++
			continue
		}

		problems := append(checkAddresses(h), checkDate(h)...)
		for _, p := range problems {
			fmt.Fprintf(w, "%s: %s\n", path, p)
		}
		if len(problems) > 0 {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d messages failed the check", failed, len(args))
	}
	return nil
}
