package cliusers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/batch"
)

// userDocument is a user record as found in an update file. The raw
// document is sent back as is.
type userDocument struct {
	raw  json.RawMessage
	Name string `json:"Name"`
	ID   string `json:"Id"`
}

// parseUserDocuments accepts a single JSON object or an array of them, as
// produced by "users list --export".
func parseUserDocuments(data []byte) ([]userDocument, error) {
	data = bytes.TrimSpace(data)

	var raws []json.RawMessage

	switch {
	case len(data) == 0:
		return nil, errors.New("empty document")
	case data[0] == '[':
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, err
		}
	default:
		raws = []json.RawMessage{data}
	}

	docs := make([]userDocument, 0, len(raws))

	for i, raw := range raws {
		doc := userDocument{raw: raw}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("user #%d: %w", i+1, err)
		}

		if doc.ID == "" && doc.Name == "" {
			return nil, fmt.Errorf("user #%d has neither Id nor Name", i+1)
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

func (cli *cliUsers) update(ctx context.Context, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	docs, err := parseUserDocuments(data)
	if err != nil {
		return fmt.Errorf("unable to parse %s: %w", file, err)
	}

	b := batch.New("users")

	for _, doc := range docs {
		label := doc.Name
		if label == "" {
			label = doc.ID
		}

		err := b.Do(label, func() error {
			id := doc.ID
			if id == "" {
				found, err := cli.userID(ctx, doc.Name)
				if err != nil {
					return err
				}

				id = found
			}

			if err := cli.client.Users.Update(ctx, id, doc.raw); err != nil {
				return err
			}

			log.Infof("user %s updated", label)

			return nil
		})
		if err != nil {
			return err
		}
	}

	return b.Err()
}

func (cli *cliUsers) newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update FILE",
		Short: "Update users from a JSON file",
		Long: `Send the user records of FILE to the server. FILE holds one object or an
array of objects, like the output of "users list --export". Users are
matched by Id, or by Name when there is no Id.`,
		Example: `jellyctl users list --export --file users.json
jellyctl users update users.json`,
		Args:              args.ExactArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.update(cmd.Context(), args[0])
		},
	}

	return cmd
}
