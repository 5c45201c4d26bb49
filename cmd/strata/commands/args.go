package commands

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

const defaultTimeFlag = "default"

func addTimeFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("time", "t", defaultTimeFlag, `Stage time to query, or "default"`)
}

func timeFlag(cmd *cobra.Command) (domain.TimeCode, error) {
	s, _ := cmd.Flags().GetString("time")
	return parseTime(s)
}

func parseTime(s string) (domain.TimeCode, error) {
	if s == "" || strings.EqualFold(s, defaultTimeFlag) {
		return domain.DefaultTime(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return domain.TimeCode{}, zerr.With(domain.ErrInvalidTime, "time", s)
	}
	return domain.At(f), nil
}

func parsePath(s string) (domain.Path, error) {
	if !strings.HasPrefix(s, "/") {
		return domain.Path{}, zerr.With(domain.ErrInvalidPath, "path", s)
	}
	return domain.NewPath(s), nil
}
