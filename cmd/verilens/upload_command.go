package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"verilens"
	"verilens/internal/history"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var link string

	cmd := &cobra.Command{
		Use:   "upload [file]",
		Short: "Upload a media file or social media link without waiting",
		Long: `Upload submits media for analysis and prints the request id. Use
"verilens result <request-id>" later to fetch the verdict. Pass a file
path, or --link with a public social media URL.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			link := strings.TrimSpace(link)
			if (len(args) == 0) == (link == "") {
				return errors.New("provide exactly one of a file path or --link")
			}

			client, err := ctx.newClient()
			if err != nil {
				return err
			}

			var (
				handle     verilens.UploadHandle
				source     string
				sourceType string
			)
			if link != "" {
				handle, err = client.UploadSocialMedia(cmd.Context(), link)
				source, sourceType = link, history.SourceTypeSocial
			} else {
				handle, err = client.Upload(cmd.Context(), args[0])
				source, sourceType = args[0], history.SourceTypeFile
			}
			if err != nil {
				return err
			}

			recordSubmission(ctx, handle.RequestID, handle.MediaID, source, sourceType, "")

			if ctx.useJSON() {
				return writeJSON(cmd, map[string]string{
					"request_id": handle.RequestID,
					"media_id":   handle.MediaID,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Request ID: %s\n", handle.RequestID)
			if handle.MediaID != "" {
				fmt.Fprintf(out, "Media ID:   %s\n", handle.MediaID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&link, "link", "", "Public social media URL to analyze instead of a file")

	return cmd
}
