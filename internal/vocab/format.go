package vocab

import (
	"fmt"
	"strconv"
	"strings"
)

// Stored LoadOrder values for the symbolic positions.
const (
	LoadOrderFirst = 0
	LoadOrderLast  = -1
)

// ParseLoadOrder reads "first", "last" or an integer of at least 1.
func ParseLoadOrder(s string) (int, bool) {
	switch s {
	case "first":
		return LoadOrderFirst, true
	case "last":
		return LoadOrderLast, true
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}

	return n, true
}

// FormatLoadOrder is the inverse of ParseLoadOrder.
func FormatLoadOrder(n int) (string, bool) {
	switch {
	case n == LoadOrderFirst:
		return "first", true
	case n == LoadOrderLast:
		return "last", true
	case n >= 1:
		return strconv.Itoa(n), true
	default:
		return "", false
	}
}

// CPUMon is the decoded form of IIsAppPool.CPUMon.
type CPUMon struct {
	Percent int
	Refresh *int
	Action  *int
}

// String encodes the monitor as "pct[,refresh[,action]]". An action without
// a refresh interval leaves the middle field empty.
func (m CPUMon) String() string {
	parts := []string{strconv.Itoa(m.Percent)}

	if m.Refresh != nil || m.Action != nil {
		refresh := ""
		if m.Refresh != nil {
			refresh = strconv.Itoa(*m.Refresh)
		}

		parts = append(parts, refresh)
	}

	if m.Action != nil {
		parts = append(parts, strconv.Itoa(*m.Action))
	}

	return strings.Join(parts, ",")
}

// ParseCPUMon decodes the column written by CPUMon.String.
func ParseCPUMon(s string) (CPUMon, error) {
	parts := strings.Split(s, ",")
	if len(parts) > 3 {
		return CPUMon{}, fmt.Errorf("cpu monitor %q has %d fields, want at most 3", s, len(parts))
	}

	var m CPUMon

	pct, err := strconv.Atoi(parts[0])
	if err != nil {
		return CPUMon{}, fmt.Errorf("cpu monitor %q: percent: %w", s, err)
	}

	m.Percent = pct

	if len(parts) > 1 && parts[1] != "" {
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return CPUMon{}, fmt.Errorf("cpu monitor %q: refresh: %w", s, err)
		}

		m.Refresh = &n
	}

	if len(parts) > 2 {
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			return CPUMon{}, fmt.Errorf("cpu monitor %q: action: %w", s, err)
		}

		m.Action = &n
	}

	return m, nil
}

// RecycleTimesSeparator joins the RecycleTime values folded into one column.
const RecycleTimesSeparator = ","

// JoinRecycleTimes folds recycle times into the parent column value.
func JoinRecycleTimes(times []string) string {
	return strings.Join(times, RecycleTimesSeparator)
}

// SplitRecycleTimes is the inverse of JoinRecycleTimes.
func SplitRecycleTimes(s string) []string {
	if s == "" {
		return nil
	}

	return strings.Split(s, RecycleTimesSeparator)
}
