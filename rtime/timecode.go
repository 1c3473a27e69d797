// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package rtime

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/rkoesters/otioframe/registry"
)

// dropframeRates are the only rates dropframe timecode is valid for.
var dropframeRates = []float64{29.97, 59.94}

func isDropframeRate(rate float64) bool {
	for _, r := range dropframeRates {
		if math.Abs(rate-r) < 0.01 {
			return true
		}
	}
	return false
}

// ToTimecode formats t (rescaled to rate) as "HH:MM:SS:FF", or
// "HH:MM:SS;FF" when dropframe is true. Dropframe is only valid at 29.97
// or 59.94; requesting it at any other rate fails with NonDropframeRate.
func ToTimecode(t RationalTime, rate float64, dropframe bool) (string, error) {
	if dropframe && !isDropframeRate(rate) {
		return "", registry.NewError(registry.KindNonDropframeRate,
			fmt.Sprintf("rate %g does not support dropframe timecode", rate))
	}

	rescaled, err := t.Rescale(rate)
	if err != nil {
		return "", err
	}
	totalFrames := int64(math.Round(rescaled.Value))
	if totalFrames < 0 {
		return "", registry.NewError(registry.KindNegativeValue, "cannot format negative timecode")
	}

	nominalRate := int64(math.Round(rate))

	if dropframe {
		frameCount := dropframeAdjustedFrameCount(totalFrames, nominalRate)
		frames := frameCount % nominalRate
		seconds := (frameCount / nominalRate) % 60
		minutes := (frameCount / nominalRate / 60) % 60
		hours := frameCount / nominalRate / 3600
		return fmt.Sprintf("%02d:%02d:%02d;%02d", hours, minutes, seconds, frames), nil
	}

	frames := totalFrames % nominalRate
	seconds := (totalFrames / nominalRate) % 60
	minutes := (totalFrames / nominalRate / 60) % 60
	hours := totalFrames / nominalRate / 3600
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hours, minutes, seconds, frames), nil
}

// dropframeAdjustedFrameCount re-expands a dropframe-encoded raw frame
// count into the inflated (non-dropped) frame count used for H:M:S:F math.
func dropframeAdjustedFrameCount(totalFrames, nominalRate int64) int64 {
	dropPerMinute := int64(2)
	if nominalRate >= 60 {
		dropPerMinute = 4
	}
	framesPerMinute := nominalRate*60 - dropPerMinute
	framesPer10Minutes := framesPerMinute*10 + dropPerMinute

	d := totalFrames / framesPer10Minutes
	m := totalFrames % framesPer10Minutes
	if m < dropPerMinute {
		m += dropPerMinute
	}

	return d*framesPer10Minutes +
		(m-dropPerMinute)/framesPerMinute*(framesPerMinute+dropPerMinute) +
		(m-dropPerMinute)%framesPerMinute + dropPerMinute
}

var timecodePattern = regexp.MustCompile(`^(-?)(\d{1,2}):(\d{2}):(\d{2})([;:])(\d{2,})$`)

// FromTimecode parses a "HH:MM:SS:FF" or "HH:MM:SS;FF" string at the given
// rate. Malformed input fails with InvalidTimecodeString; a frame field
// greater than or equal to rate rounded to the nearest integer fails with
// TimecodeRateMismatch.
func FromTimecode(timecode string, rate float64) (RationalTime, error) {
	m := timecodePattern.FindStringSubmatch(timecode)
	if m == nil {
		return RationalTime{}, registry.NewError(registry.KindInvalidTimecodeString,
			fmt.Sprintf("malformed timecode %q", timecode))
	}

	negative := m[1] == "-"
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	seconds, _ := strconv.Atoi(m[4])
	dropframe := m[5] == ";"
	frames, _ := strconv.Atoi(m[6])

	nominalRate := int(math.Round(rate))
	if frames >= nominalRate {
		return RationalTime{}, registry.NewError(registry.KindTimecodeRateMismatch,
			fmt.Sprintf("frame field %d is not valid at rate %g", frames, rate))
	}

	var totalFrames int64
	if dropframe {
		if !isDropframeRate(rate) {
			return RationalTime{}, registry.NewError(registry.KindNonDropframeRate,
				fmt.Sprintf("rate %g does not support dropframe timecode", rate))
		}
		dropPerMinute := int64(2)
		if nominalRate >= 60 {
			dropPerMinute = 4
		}
		framesPerMinute := int64(nominalRate)*60 - dropPerMinute
		framesPer10Minutes := framesPerMinute*10 + dropPerMinute

		totalMinutes := int64(hours)*60 + int64(minutes)
		totalFrames = framesPer10Minutes*(totalMinutes/10) +
			framesPerMinute*(totalMinutes%10) +
			int64(seconds)*int64(nominalRate) + int64(frames) -
			dropPerMinute*(totalMinutes-totalMinutes/10)
	} else {
		totalFrames = int64(hours)*3600*int64(nominalRate) +
			int64(minutes)*60*int64(nominalRate) +
			int64(seconds)*int64(nominalRate) +
			int64(frames)
	}

	if negative {
		totalFrames = -totalFrames
	}

	return RationalTime{Value: float64(totalFrames), Rate: rate}, nil
}

var timeStringPattern = regexp.MustCompile(`^(-?)(\d+):(\d{2}):(\d+(?:\.\d+)?)$`)

// ToTimeString renders t as "HH:MM:SS.fraction" seconds, trimming
// trailing zero fraction digits but always keeping at least one.
func ToTimeString(t RationalTime) string {
	total := t.ToSeconds()
	negative := total < 0
	if negative {
		total = -total
	}

	hours := int64(total / 3600)
	minutes := int64(math.Mod(total/60, 60))
	seconds := math.Mod(total, 60)

	prefix := ""
	if negative {
		prefix = "-"
	}

	whole := int64(seconds)
	frac := seconds - float64(whole)

	var secStr string
	if frac == 0 {
		secStr = fmt.Sprintf("%02d.0", whole)
	} else {
		fracStr := fmt.Sprintf("%.6f", frac)
		// trim the leading "0" and trailing zeros, keep the decimal point
		fracStr = fracStr[1:]
		for len(fracStr) > 2 && fracStr[len(fracStr)-1] == '0' {
			fracStr = fracStr[:len(fracStr)-1]
		}
		secStr = fmt.Sprintf("%02d%s", whole, fracStr)
	}

	return fmt.Sprintf("%s%02d:%02d:%s", prefix, hours, minutes, secStr)
}

// FromTimeString parses a "H:MM:SS[.fraction]" string into a RationalTime
// at the given rate. Malformed input fails with InvalidTimeString.
func FromTimeString(timeString string, rate float64) (RationalTime, error) {
	m := timeStringPattern.FindStringSubmatch(timeString)
	if m == nil {
		return RationalTime{}, registry.NewError(registry.KindInvalidTimeString,
			fmt.Sprintf("malformed time string %q", timeString))
	}

	negative := m[1] == "-"
	hours, _ := strconv.ParseFloat(m[2], 64)
	minutes, _ := strconv.ParseFloat(m[3], 64)
	seconds, _ := strconv.ParseFloat(m[4], 64)

	total := hours*3600 + minutes*60 + seconds
	if negative {
		total = -total
	}

	return FromSeconds(total, rate), nil
}
