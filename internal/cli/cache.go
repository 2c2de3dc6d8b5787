package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tablecast/pkg/cache"
	"github.com/matzehuels/tablecast/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. It clears the
// backend the theme file selects: the Redis keys under [cache] prefix when
// [cache] redis is set, otherwise the local cache directory.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var configPath, redisURL string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete cached artifacts from the configured cache backend",
		Long: `Delete cached artifacts from the backend render uses.

With [cache] redis in the theme file (or --redis), every artifact key under
[cache] prefix is deleted from Redis. Otherwise the local cache directory
is emptied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("redis") {
				cfg.Cache.Redis = redisURL
			}
			if cfg.Cache.Redis != "" {
				return clearRedis(cmd, cfg.Cache)
			}
			return clearLocal(cmd)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "theme file (default: ~/.config/tablecast/config.toml)")
	cmd.Flags().StringVar(&redisURL, "redis", "", "clear this Redis cache instead of the configured backend")
	return cmd
}

func clearRedis(cmd *cobra.Command, cfg config.Cache) error {
	store, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return err
	}
	defer store.Close()

	match := cache.ArtifactMatch(cfg.Prefix)
	count, err := store.(*cache.RedisCache).Purge(cmd.Context(), match)
	if err != nil {
		return fmt.Errorf("clear redis cache: %w", err)
	}
	out := cmd.OutOrStdout()
	printSuccess(out, "Cleared %d cached artifacts", count)
	printDetail(out, "Redis keys: %s", match)
	return nil
}

func clearLocal(cmd *cobra.Command) error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}

	out := cmd.OutOrStdout()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo(out, "Cache is empty")
		return nil
	}

	count, err := clearCacheDir(dir)
	if err != nil {
		return err
	}
	printSuccess(out, "Cleared %d cached artifacts", count)
	printDetail(out, "Directory: %s", dir)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// clearCacheDir removes every file below dir, then the emptied
// subdirectories. dir itself is kept. Unreadable entries are skipped.
func clearCacheDir(dir string) (int, error) {
	count := 0
	var subdirs []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == dir {
			return nil
		}
		if d.IsDir() {
			subdirs = append(subdirs, path)
			return nil
		}
		if err := os.Remove(path); err == nil {
			count++
		}
		return nil
	})
	if err != nil {
		return count, err
	}
	for i := len(subdirs) - 1; i >= 0; i-- {
		_ = os.Remove(subdirs[i])
	}
	return count, nil
}
