package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/John-Robertt/subhub-go/internal/render"
)

var (
	convertTarget string
	convertInput  string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a descriptor list without running the server",
	Long: `Read one descriptor per line from --input (or stdin) and write the
--target rendition to stdout. Lines that cannot be converted are skipped and
counted on stderr.

Example usage:
  subhub convert --target clash --input nodes.txt > clash.yaml
  cat nodes.txt | subhub convert --target surge`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		target, err := render.ParseTarget(convertTarget)
		if err != nil {
			return err
		}

		in := cmd.InOrStdin()
		if convertInput != "" && convertInput != "-" {
			f, err := os.Open(convertInput)
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		res, err := convert(cmd.Context(), in, cmd.OutOrStdout(), target, time.Now)
		if err != nil {
			return err
		}
		if res.Dropped > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "target=%s emitted=%d dropped=%d\n", target, res.Emitted, res.Dropped)
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVarP(&convertTarget, "target", "t", "clash", "输出格式：surge | clash | v2ray | raw")
	convertCmd.Flags().StringVarP(&convertInput, "input", "i", "", "节点列表文件，留空或 - 表示 stdin")
	rootCmd.AddCommand(convertCmd)
}

func convert(ctx context.Context, r io.Reader, w io.Writer, target render.Target, now func() time.Time) (*render.Result, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	res, err := render.Render(ctx, target, lines, render.Options{Now: now})
	if err != nil {
		return nil, err
	}
	text := res.Text
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if _, err := io.WriteString(w, text); err != nil {
		return nil, err
	}
	return res, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}
