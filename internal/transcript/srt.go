package transcript

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var reSrtTiming = regexp.MustCompile(`^(\d{2,}):(\d{2}):(\d{2})[,.](\d{3})\s+-->\s+(\d{2,}):(\d{2}):(\d{2})[,.](\d{3})`)

// ParseSRT parses SRT subtitle content (whisper.cpp's -osrt output) into
// segments. Blocks without a timing line are skipped.
func ParseSRT(content string) ([]Segment, error) {
	var segments []Segment

	blocks := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n")
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}

		// Index line is optional; timing is on the first or second line.
		timingIdx := -1
		for i, line := range lines {
			if reSrtTiming.MatchString(strings.TrimSpace(line)) {
				timingIdx = i
				break
			}
		}
		if timingIdx < 0 || timingIdx == len(lines)-1 {
			continue
		}

		m := reSrtTiming.FindStringSubmatch(strings.TrimSpace(lines[timingIdx]))
		start, err := srtTime(m[1], m[2], m[3], m[4])
		if err != nil {
			return nil, fmt.Errorf("parse start time %q: %w", lines[timingIdx], err)
		}
		end, err := srtTime(m[5], m[6], m[7], m[8])
		if err != nil {
			return nil, fmt.Errorf("parse end time %q: %w", lines[timingIdx], err)
		}

		text := strings.TrimSpace(strings.Join(lines[timingIdx+1:], " "))
		if text == "" {
			continue
		}

		segments = append(segments, Segment{Start: start, End: end, Text: text})
	}

	return segments, nil
}

func srtTime(h, m, s, ms string) (float64, error) {
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, err
	}
	minutes, err := strconv.Atoi(m)
	if err != nil {
		return 0, err
	}
	seconds, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	millis, err := strconv.Atoi(ms)
	if err != nil {
		return 0, err
	}
	return float64(hours)*3600 + float64(minutes)*60 + float64(seconds) + float64(millis)/1000, nil
}
