package system

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/ludwigVonKoopa/anim"
)

// bytesPerSample covers one trajectory row: the marker, four extent
// values and a speed, plus slice bookkeeping.
const bytesPerSample = 128

// warnFraction of available memory at which the preflight starts
// complaining.
const warnFraction = 0.5

// EstimateTrajectoryBytes sizes the dense output of a resampling run.
func EstimateTrajectoryBytes(samples int) uint64 {
	if samples <= 0 {
		return 0
	}
	if uint64(samples) > math.MaxUint64/bytesPerSample {
		return math.MaxUint64
	}
	return uint64(samples) * bytesPerSample
}

// CheckMemoryBudget verifies the estimated trajectory fits in available
// memory. Probe failures are logged and ignored so the preflight stays
// advisory on platforms gopsutil cannot read.
func CheckMemoryBudget(samples int, log zerolog.Logger) error {
	need := EstimateTrajectoryBytes(samples)

	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Warn().Err(err).Msg("memory probe failed, skipping preflight")
		return nil
	}

	if need > vm.Available {
		return fmt.Errorf("%w: trajectory needs %s but only %s is available, raise the step or shorten the path",
			anim.ErrValidation, FormatBytes(need), FormatBytes(vm.Available))
	}
	if float64(need) > float64(vm.Available)*warnFraction {
		log.Warn().
			Str("need", FormatBytes(need)).
			Str("available", FormatBytes(vm.Available)).
			Msg("trajectory will consume a large share of available memory")
	}

	log.Debug().
		Int("samples", samples).
		Str("need", FormatBytes(need)).
		Str("available", FormatBytes(vm.Available)).
		Msg("memory preflight passed")
	return nil
}

// FormatBytes renders a byte count in binary units.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
