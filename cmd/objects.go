package cmd

import (
	"fmt"
	"io"
	"os"

	"object-store/core/config"
	"object-store/core/logger"
	"object-store/core/storage"
	"object-store/feature/objects"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cliBucket    string
	rmRecursive  bool
	getOutputArg string
)

// buildStore wires a Store for one-shot CLI use. CLI invocations skip the
// audit database; auditing is a server concern.
func buildStore() (*objects.Store, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return objects.NewStore(client, cfg.Storage, logg, objects.NewRecorder(nil, logg)), logg, nil
}

func bucketOpts() []objects.CallOption {
	if cliBucket != "" {
		return []objects.CallOption{objects.WithBucket(cliBucket)}
	}
	return nil
}

// putCmd uploads a local file.
var putCmd = &cobra.Command{
	Use:   "put <local-path> <key>",
	Short: "Upload a local file and print its public URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := buildStore()
		if err != nil {
			return err
		}

		url, err := store.Upload(cmd.Context(), args[0], args[1], bucketOpts()...)
		if err != nil {
			return err
		}

		fmt.Println(url)
		return nil
	},
}

// getCmd downloads an object.
var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Download an object to a file or stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := buildStore()
		if err != nil {
			return err
		}

		rc, err := store.Download(cmd.Context(), args[0], bucketOpts()...)
		if err != nil {
			return err
		}
		defer rc.Close()

		var out io.Writer = os.Stdout
		if getOutputArg != "" {
			f, err := os.Create(getOutputArg)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if _, err := io.Copy(out, rc); err != nil {
			return fmt.Errorf("failed to read object: %w", err)
		}
		return nil
	},
}

// statCmd reports object metadata.
var statCmd = &cobra.Command{
	Use:   "stat <key>",
	Short: "Show object metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := buildStore()
		if err != nil {
			return err
		}

		info, err := store.Stat(cmd.Context(), args[0], bucketOpts()...)
		if err != nil {
			return err
		}

		fmt.Printf("Key:           %s\n", info.Key)
		fmt.Printf("Size:          %d\n", info.Size)
		fmt.Printf("Content-Type:  %s\n", info.ContentType)
		fmt.Printf("Last-Modified: %s\n", info.LastModified)
		return nil
	},
}

// rmCmd deletes an object or a prefix.
var rmCmd = &cobra.Command{
	Use:   "rm <key>",
	Short: "Delete an object (or a whole prefix with --recursive)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, logg, err := buildStore()
		if err != nil {
			return err
		}

		if rmRecursive {
			count, err := store.DeletePrefix(cmd.Context(), args[0], bucketOpts()...)
			if err != nil {
				return err
			}
			logg.Info("Prefix deleted", zap.String("prefix", args[0]), zap.Int("count", count))
			fmt.Printf("Deleted %d objects under %s\n", count, args[0])
			return nil
		}

		if err := store.Delete(cmd.Context(), args[0], bucketOpts()...); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

// cpCmd copies an object server-side.
var cpCmd = &cobra.Command{
	Use:   "cp <from-key> <to-key>",
	Short: "Copy an object within the bucket",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := buildStore()
		if err != nil {
			return err
		}

		if err := store.Copy(cmd.Context(), args[0], args[1], bucketOpts()...); err != nil {
			return err
		}
		fmt.Printf("Copied %s -> %s\n", args[0], args[1])
		return nil
	},
}

// lsCmd lists objects under a prefix.
var lsCmd = &cobra.Command{
	Use:   "ls [prefix]",
	Short: "List objects under a prefix",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := buildStore()
		if err != nil {
			return err
		}

		prefix := ""
		if len(args) > 0 {
			prefix = args[0]
		}

		infos, err := store.List(cmd.Context(), prefix, bucketOpts()...)
		if err != nil {
			return err
		}

		for _, info := range infos {
			fmt.Printf("%12d  %s  %s\n", info.Size, info.LastModified.Format("2006-01-02 15:04:05"), info.Key)
		}
		fmt.Printf("Total: %d objects\n", len(infos))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{putCmd, getCmd, statCmd, rmCmd, cpCmd, lsCmd} {
		c.Flags().StringVar(&cliBucket, "bucket", "", "Override the configured bucket")
		RootCmd.AddCommand(c)
	}
	getCmd.Flags().StringVarP(&getOutputArg, "output", "o", "", "Write the object to this file instead of stdout")
	rmCmd.Flags().BoolVarP(&rmRecursive, "recursive", "r", false, "Delete every object under the given prefix")
}
