// Copyright 2026 The Bencoding Authors. All rights reserved.
// Use of this source code is governed by the BSD 2-Clause license,
// which can be found in the LICENSE file.

package main

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v2"

	"github.com/ardverk/bencoding/bencode"
	"github.com/ardverk/bencoding/pkg/log"
)

func main() {
	var configFilePath string
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "bendump [file]",
		Short: "Bencoding inspector",
		Long:  "Decodes a bencoded value from a file or stdin and re-renders it as JSON, YAML or MessagePack",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				log.SetDebug(true)
			}

			cfg, err := loadConfig(cmd, configFilePath)
			if err != nil {
				return errors.Wrap(err, "failed to load config")
			}

			in, closeIn, err := openInput(args)
			if err != nil {
				return err
			}
			defer closeIn()

			r, err := wrapCompressed(in)
			if err != nil {
				return errors.Wrap(err, "failed to open compressed input")
			}

			return dump(cmd.OutOrStdout(), r, cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFilePath, "config", "", "location of a configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().String("format", "json", "output format: json, yaml or msgpack")
	rootCmd.Flags().String("charset", "", "IANA name of the text encoding (default UTF-8)")
	rootCmd.Flags().Bool("strings", false, "materialize byte-strings as text")

	rootCmd.AddCommand(benchCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal("failed to run", log.Err(err))
	}
}

// openInput returns the named file, or stdin when no argument was given.
func openInput(args []string) (io.Reader, func(), error) {
	if len(args) == 0 {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(os.ExpandEnv(args[0]))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open input")
	}
	return f, func() { f.Close() }, nil
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// wrapCompressed sniffs gzip and zstd magic numbers and transparently
// decompresses the input when one matches.
func wrapCompressed(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(4)
	if err != nil {
		// Too short to be compressed; let the decoder complain.
		return br, nil
	}

	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		log.Debug("input is gzip compressed")
		return gzip.NewReader(br)
	case bytes.Equal(magic, zstdMagic):
		log.Debug("input is zstd compressed")
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	}

	return br, nil
}

// dump decodes a single value from r and renders it to w.
func dump(w io.Writer, r io.Reader, cfg Config) error {
	dec, err := bencode.New(r, cfg.Decoder)
	if err != nil {
		return err
	}

	v, err := dec.ReadObject()
	if err != nil {
		return errors.Wrap(err, "decode failed")
	}

	switch cfg.Format {
	case "json":
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(plain(v))
	case "yaml":
		out, err := yaml.Marshal(plain(v))
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case "msgpack":
		return msgpack.NewEncoder(w).Encode(plain(v))
	}
	return errors.Errorf("unknown output format %q", cfg.Format)
}

// plain converts a decoded value into builtin types for re-encoding.
// Integers that fit an int64 stay numeric; anything wider degrades to a
// string, as do decimals.
func plain(v bencode.Value) interface{} {
	switch v.Kind() {
	case bencode.KindBytes:
		b, _ := v.AsBytes()
		return b
	case bencode.KindString:
		s, _ := v.AsString()
		return s
	case bencode.KindInteger:
		n, _ := v.AsInteger()
		if n.IsInt64() {
			return n.Int64()
		}
		return n.String()
	case bencode.KindDecimal:
		d, _ := v.AsDecimal()
		return d.String()
	case bencode.KindList:
		list, _ := v.AsList()
		out := make([]interface{}, 0, len(list))
		for _, elem := range list {
			out = append(out, plain(elem))
		}
		return out
	case bencode.KindDict:
		d, _ := v.AsDict()
		out := make(map[string]interface{}, d.Len())
		d.Ascend(func(key string, val bencode.Value) bool {
			out[key] = plain(val)
			return true
		})
		return out
	case bencode.KindCustom:
		c, _ := v.AsCustom()
		return c
	}
	return nil
}
