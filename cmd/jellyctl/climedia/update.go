package climedia

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jellyctl/jellyctl/cmd/jellyctl/core/args"
	"github.com/jellyctl/jellyctl/pkg/apiclient"
	"github.com/jellyctl/jellyctl/pkg/models"
)

func (cli *cliMedia) updateMetadata(ctx context.Context, itemID, file string) error {
	document, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	if !json.Valid(document) {
		return fmt.Errorf("%s is not a valid JSON document", file)
	}

	if err := cli.client.Items.UpdateMetadata(ctx, itemID, document); err != nil {
		return fmt.Errorf("unable to update item %s: %w", itemID, err)
	}

	log.Infof("metadata of item %s updated", itemID)

	return nil
}

func (cli *cliMedia) newUpdateMetadataCmd() *cobra.Command {
	var itemID, file string

	cmd := &cobra.Command{
		Use:   "update-metadata",
		Short: "Replace the metadata of an item",
		Long: `Send the JSON item document of --file to the server. The document is
usually taken from a search with -o json and edited.`,
		Example:           `jellyctl media update-metadata --id 0f6bf02a805f137a2dd21bbc1b99aa5c --file item.json`,
		Args:              args.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.updateMetadata(cmd.Context(), itemID, file)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&itemID, "id", "i", "", "item id")
	flags.StringVarP(&file, "file", "f", "", "JSON item document")

	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// readPNG loads an image and returns it encoded as PNG.
func readPNG(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s: %w", path, err)
	}

	log.Debugf("%s is a %s image of %dx%d", path, format, img.Bounds().Dx(), img.Bounds().Dy())

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// findByTitle resolves a title to a single item.
func (cli *cliMedia) findByTitle(ctx context.Context, title string) (string, error) {
	result, err := cli.client.Items.Search(ctx, apiclient.ItemsSearchOpts{SearchTerm: title, Recursive: true})
	if err != nil {
		return "", fmt.Errorf("unable to search %q: %w", title, err)
	}

	switch len(result.Items) {
	case 0:
		return "", fmt.Errorf("no item matches %q", title)
	case 1:
		return result.Items[0].ID, nil
	default:
		return "", fmt.Errorf("%d items match %q, use a unique title or --id", len(result.Items), title)
	}
}

func (cli *cliMedia) updateImage(ctx context.Context, itemID, title, path, imageType string) error {
	if !slices.Contains(models.ImageTypes, imageType) {
		return fmt.Errorf("unknown image type %q, expected one of %s", imageType, strings.Join(models.ImageTypes, ", "))
	}

	if itemID == "" && title == "" {
		return errors.New("please provide the item with --id or --title")
	}

	data, err := readPNG(path)
	if err != nil {
		return err
	}

	if itemID == "" {
		if itemID, err = cli.findByTitle(ctx, title); err != nil {
			return err
		}
	}

	if err := cli.client.Items.UploadImage(ctx, itemID, imageType, data); err != nil {
		return fmt.Errorf("unable to upload image: %w", err)
	}

	log.Infof("%s image of item %s updated", imageType, itemID)

	return nil
}

func (cli *cliMedia) newUpdateImageCmd() *cobra.Command {
	var itemID, title, path, imageType string

	cmd := &cobra.Command{
		Use:   "update-image",
		Short: "Replace an image of an item",
		Long: `Upload an image for an item, found by --id or by a --title matching exactly
one item. PNG, JPEG and GIF files are accepted and sent as PNG.`,
		Example: `jellyctl media update-image --id 0f6bf02a805f137a2dd21bbc1b99aa5c --path poster.jpg --image-type Primary
jellyctl media update-image --title "The Matrix" --path backdrop.png --image-type Backdrop`,
		Args:              args.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.updateImage(cmd.Context(), itemID, title, path, imageType)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&itemID, "id", "i", "", "item id")
	flags.StringVarP(&title, "title", "t", "", "title matching a single item")
	flags.StringVarP(&path, "path", "p", "", "image file")
	flags.StringVarP(&imageType, "image-type", "I", "Primary", "image type: "+strings.Join(models.ImageTypes, ", "))

	cmd.MarkFlagsMutuallyExclusive("id", "title")
	cmd.MarkFlagsOneRequired("id", "title")
	_ = cmd.MarkFlagRequired("path")
	_ = cmd.RegisterFlagCompletionFunc("image-type", cobra.FixedCompletions(models.ImageTypes, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
