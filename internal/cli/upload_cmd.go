package cli

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danialarif/gigdesk/internal/cli/formatter"
	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/danialarif/gigdesk/internal/upload"
)

// mimeTypeFor guesses a MIME type from the file extension, falling
// back to octet-stream.
func mimeTypeFor(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "application/octet-stream"
}

func newUploadCmd(app *App) *cobra.Command {
	var (
		prefix   string
		public   bool
		category string
	)

	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload files through the presigned-URL flow",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := readUploadFiles(args)
			if err != nil {
				return err
			}

			visibility := domain.VisibilityPrivate
			if public {
				visibility = domain.VisibilityPublic
			}

			results := app.Uploader.UploadAll(context.Background(), files, upload.Options{
				Prefix:     prefix,
				Visibility: visibility,
				Category:   domain.FileCategory(category),
				Progress: func(name string, pct int) {
					fmt.Printf("%s %s %d%%\n", formatter.Dim("uploading"), name, pct)
				},
			})

			failed := 0
			for _, r := range results {
				if !r.Success() {
					failed++
					fmt.Printf("%s %s: %v\n", formatter.StyleRed.Render("✖"), r.Name, r.Err)
					continue
				}
				line := fmt.Sprintf("%s %s  %s", formatter.StyleGreen.Render("✔"), r.Name, formatter.Dim(r.Key))
				if r.URL != "" {
					line += "\n  " + formatter.StyleBlue.Render(r.URL)
				}
				fmt.Println(line)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d uploads failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Storage key prefix, e.g. disputes/<project-id>")
	cmd.Flags().BoolVar(&public, "public", false, "Make the uploads publicly fetchable")
	cmd.Flags().StringVar(&category, "category", string(domain.CategoryDocument), "Size-limit category (image, document, video)")
	return cmd
}

func newDownloadCmd(app *App) *cobra.Command {
	var expiresIn int

	cmd := &cobra.Command{
		Use:   "download <key>",
		Short: "Exchange a private storage key for a short-lived signed URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if expiresIn == 0 {
				expiresIn = app.Config.DownloadExpirySec
			}
			grant, err := app.Client.SignedDownload(context.Background(), args[0], expiresIn)
			if err != nil {
				return err
			}
			fmt.Println(formatter.StyleBlue.Render(grant.DownloadURL))
			fmt.Println(formatter.Dim(fmt.Sprintf("expires in %d seconds", grant.ExpiresIn)))
			return nil
		},
	}

	cmd.Flags().IntVar(&expiresIn, "expires", 0, "Expiry in seconds (0 uses the backend default)")
	return cmd
}
