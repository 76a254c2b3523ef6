package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cybroslabs/macsec-gcm-ref/packet"
)

func newHKeyCmd() *cobra.Command {
	var (
		keyHex string
		inHex  string
	)

	cmd := &cobra.Command{
		Use:   "hkey",
		Short: "Run one raw AES-128 block encryption (the H-subkey probe)",
		Long: `hkey exposes the single AES-128 block encryption that verification
harnesses use to precompute the GHASH subkey H externally. With the
default all-zero input block, the output is exactly H for the given key.`,
		Example: `  $ gcmrefctl hkey --key 00000000000000000000000000000000
  66e94bd4ef8a2c3b884cfa59ca342b2e`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKey(keyHex)
			if err != nil {
				return err
			}

			var in [16]byte
			if inHex != "" {
				b, err := hex.DecodeString(inHex)
				if err != nil {
					return fmt.Errorf("invalid --in hex: %w", err)
				}
				if len(b) != 16 {
					return fmt.Errorf("--in must be 16 bytes, got %d", len(b))
				}
				copy(in[:], b)
			}

			out := packet.AesHKey(key, in)
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(out[:]))
			return nil
		},
	}

	cmd.Flags().StringVar(&keyHex, "key", "", "128-bit key as 32 hex digits")
	cmd.Flags().StringVar(&inHex, "in", "", "input block as 32 hex digits (default all zeros)")
	cobra.CheckErr(cmd.MarkFlagRequired("key"))
	return cmd
}
