package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/iburimskiy/audio-reactor/internal/audio"
	"github.com/iburimskiy/audio-reactor/internal/particles"
	"github.com/iburimskiy/audio-reactor/internal/spectrum"
)

// Flags are command-line overrides applied on top of a preset.
type Flags struct {
	Preset     string
	Source     string
	File       string
	SampleRate int
	BlockSize  int
	Bars       int
	Backend    string
	Alpha      float64
	Outer      string
	Seed       int64
	Width      int
	Height     int
	Verbose    bool
}

// RegisterFlags defines the override flags on fs. Defaults shown in the
// usage text are those of the default preset.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	d := Default()
	f := &Flags{}
	fs.StringVar(&f.Preset, "preset", DefaultPreset, "Visual preset: "+strings.Join(Presets(), "|"))
	fs.StringVar(&f.Source, "source", string(d.Audio.Source), "Audio source: mic|file|tone")
	fs.StringVar(&f.File, "file", "", "Audio file for -source file (wav, mp3, flac); empty opens a dialog")
	fs.IntVar(&f.SampleRate, "rate", d.Audio.SampleRate, "Sample rate in Hz")
	fs.IntVar(&f.BlockSize, "block", d.Audio.BlockSize, "Samples per block (FFT size)")
	fs.IntVar(&f.Bars, "bars", d.Analysis.Bars, "Spectrum bins kept")
	fs.StringVar(&f.Backend, "fft", string(spectrum.BackendGonum), "FFT backend: gonum|godsp")
	fs.Float64Var(&f.Alpha, "alpha", d.Features.Alpha, "Smoothing weight kept from the previous frame")
	fs.StringVar(&f.Outer, "outer", particles.OuterClamp.String(), "Particle outer limit policy: clamp|reset")
	fs.Int64Var(&f.Seed, "seed", d.Seed, "Random seed")
	fs.IntVar(&f.Width, "width", d.Window.Width, "Window width")
	fs.IntVar(&f.Height, "height", d.Window.Height, "Window height")
	fs.BoolVar(&f.Verbose, "v", false, "Log periodic engine stats")
	return f
}

// ApplyFlags copies the flags explicitly set on fs into cfg. Flags left
// at their default keep the preset's value.
func ApplyFlags(fs *flag.FlagSet, f *Flags, cfg *Config) error {
	var err error
	fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "source":
			var k audio.Kind
			if k, err = audio.ParseKind(f.Source); err == nil {
				cfg.Audio.Source = k
			}
		case "file":
			cfg.Audio.File = f.File
			if cfg.Audio.Source != audio.KindFile && !isSet(fs, "source") {
				cfg.Audio.Source = audio.KindFile
			}
		case "rate":
			cfg.Audio.SampleRate = f.SampleRate
		case "block":
			cfg.Audio.BlockSize = f.BlockSize
		case "bars":
			cfg.Analysis.Bars = f.Bars
		case "fft":
			cfg.Analysis.Backend = spectrum.Backend(f.Backend)
		case "alpha":
			cfg.Features.Alpha = f.Alpha
		case "outer":
			switch f.Outer {
			case "clamp":
				cfg.Particles.Outer = particles.OuterClamp
			case "reset":
				cfg.Particles.Outer = particles.OuterReset
			default:
				err = fmt.Errorf("%w: unknown outer policy %q", ErrInvalid, f.Outer)
			}
		case "seed":
			cfg.Seed = f.Seed
		case "width":
			cfg.Window.Width = f.Width
		case "height":
			cfg.Window.Height = f.Height
		case "v":
			cfg.Verbose = f.Verbose
		}
	})
	return err
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

// Load parses args, starts from the selected preset, applies the explicit
// overrides and validates the result.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	f := RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return FromFlags(fs, f)
}

// FromFlags builds the config for an already parsed flag set.
func FromFlags(fs *flag.FlagSet, f *Flags) (Config, error) {
	cfg, err := Preset(f.Preset)
	if err != nil {
		return Config{}, err
	}
	if err := ApplyFlags(fs, f, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
