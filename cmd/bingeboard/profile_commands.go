package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bingeboard/internal/feedback"
	"bingeboard/internal/profile"
)

func newProfileCommand(ctx *commandContext) *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the profile bio and cover art",
	}

	profileCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				return printProfile(cmd, ctx, c, a.profile)
			})
		},
	})

	profileCmd.AddCommand(&cobra.Command{
		Use:   "bio [text]",
		Short: "Set the profile bio (no text clears it)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bio := strings.Join(args, " ")
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				if err := a.profile.SetBio(c, bio); err != nil {
					return err
				}
				return printProfile(cmd, ctx, c, a.profile)
			})
		},
	})

	var presetKey, coverURL string
	var clearCover, listPresets bool
	coverCmd := &cobra.Command{
		Use:   "cover",
		Short: "Choose a preset cover, set a custom cover URL, or clear it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listPresets {
				presets := profile.Presets()
				if ctx.jsonOutput() {
					return writeJSON(cmd, presets)
				}
				rows := make([][]string, 0, len(presets))
				for _, p := range presets {
					rows = append(rows, []string{p.Key, p.Name, p.URL})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Key", "Name", "URL"}, rows, nil))
				return nil
			}
			if !clearCover && presetKey == "" && coverURL == "" {
				return errors.New("pass --preset, --url, --clear, or --list")
			}
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				var err error
				switch {
				case clearCover:
					err = a.profile.ClearCoverArt(c)
				case presetKey != "":
					err = a.profile.SetPresetCoverKey(c, strings.TrimSpace(presetKey))
				default:
					err = a.profile.SetCoverPhotoURL(c, coverURL)
				}
				if err != nil {
					return err
				}
				return printProfile(cmd, ctx, c, a.profile)
			})
		},
	}
	coverCmd.Flags().StringVar(&presetKey, "preset", "", "Preset cover key")
	coverCmd.Flags().StringVar(&coverURL, "url", "", "Custom cover image URL")
	coverCmd.Flags().BoolVar(&clearCover, "clear", false, "Remove the cover selection")
	coverCmd.Flags().BoolVar(&listPresets, "list", false, "List preset covers")
	coverCmd.MarkFlagsMutuallyExclusive("preset", "url", "clear", "list")
	profileCmd.AddCommand(coverCmd)

	return profileCmd
}

func printProfile(cmd *cobra.Command, ctx *commandContext, c context.Context, svc *profile.Service) error {
	p, err := svc.Get(c)
	if err != nil {
		return err
	}
	if ctx.jsonOutput() {
		return writeJSON(cmd, p)
	}
	out := cmd.OutOrStdout()
	bio := p.Bio
	if bio == "" {
		bio = "(none)"
	}
	fmt.Fprintf(out, "Bio:   %s\n", bio)
	cover := p.EffectiveCoverURL
	if p.PresetCoverKey != "" {
		cover = fmt.Sprintf("%s (preset %s)", cover, p.PresetCoverKey)
	}
	fmt.Fprintf(out, "Cover: %s\n", cover)
	return nil
}

func newFeedbackCommand(ctx *commandContext) *cobra.Command {
	var attachment string
	var attachmentSize int64
	cmd := &cobra.Command{
		Use:   "feedback <message>",
		Short: "Send feedback about BingeBoard",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sub := feedback.Submission{
				Text:           strings.Join(args, " "),
				AttachmentName: attachment,
				AttachmentSize: attachmentSize,
			}
			return ctx.withApp(cmd, func(c context.Context, a *app) error {
				fb, err := a.feedback.Submit(c, sub)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, fb)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Thanks! Feedback recorded (%s)\n", fb.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&attachment, "attachment-name", "", "Name of a related file")
	cmd.Flags().Int64Var(&attachmentSize, "attachment-size", 0, "Size of the related file in bytes")
	return cmd
}
