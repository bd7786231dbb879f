package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/story-knights/parameter"
	"github.com/lixenwraith/story-knights/vmath"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Arena describes the battle field
type Arena struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	TopMargin    float64 `yaml:"top_margin"`
	SpawnMargin  float64 `yaml:"spawn_margin"`
	MinSpacing   float64 `yaml:"min_spacing"`
	SpawnRetries int     `yaml:"spawn_retries"`
}

// Knight describes the avatar body
type Knight struct {
	Size  float64 `yaml:"size"`
	Speed float64 `yaml:"speed"`
}

// Combat describes attack timing and geometry
type Combat struct {
	FPS            int     `yaml:"fps"`
	CooldownFrames int     `yaml:"cooldown_frames"`
	SwingFrames    int     `yaml:"swing_frames"`
	ConeDegrees    float64 `yaml:"cone_degrees"`
	EndDelayMs     int     `yaml:"end_delay_ms"`
	LogSize        int     `yaml:"log_size"`
}

// Shield describes blocking
type Shield struct {
	MaxHP            float64 `yaml:"max_hp"`
	RegenPerSecond   float64 `yaml:"regen_per_second"`
	ProtectionRadius float64 `yaml:"protection_radius"`
	ConeDegrees      float64 `yaml:"cone_degrees"`
}

// AI describes the computer-controlled policy
type AI struct {
	RetargetFrames     int     `yaml:"retarget_frames"`
	ApproachFactor     float64 `yaml:"approach_factor"`
	TurnRateDegrees    float64 `yaml:"turn_rate_degrees"`
	BlockChance        float64 `yaml:"block_chance"`
	BlockThreatDegrees float64 `yaml:"block_threat_degrees"`
}

// Network describes the relay connection
type Network struct {
	Address       string `yaml:"address"`
	StatusAddress string `yaml:"status_address"`
	MaxPeers      int    `yaml:"max_peers"`
}

// Audio toggles sound cues
type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// Config is the full battle configuration
type Config struct {
	Arena   Arena   `yaml:"arena"`
	Knight  Knight  `yaml:"knight"`
	Combat  Combat  `yaml:"combat"`
	Shield  Shield  `yaml:"shield"`
	AI      AI      `yaml:"ai"`
	Network Network `yaml:"network"`
	Audio   Audio   `yaml:"audio"`
}

// Default returns the tuned values from the parameter package
func Default() *Config {
	return &Config{
		Arena: Arena{
			Width:        parameter.ArenaWidth,
			Height:       parameter.ArenaHeight,
			TopMargin:    parameter.ArenaTopMargin,
			SpawnMargin:  parameter.ArenaSpawnMargin,
			MinSpacing:   parameter.SpawnMinSeparation,
			SpawnRetries: parameter.SpawnMaxAttempts,
		},
		Knight: Knight{
			Size:  parameter.KnightSize,
			Speed: parameter.KnightSpeed,
		},
		Combat: Combat{
			FPS:            parameter.FramesPerSecond,
			CooldownFrames: parameter.AttackCooldownFrames,
			SwingFrames:    parameter.SwingFrames,
			ConeDegrees:    parameter.AttackConeDegrees,
			EndDelayMs:     int(parameter.BattleEndDisplayDelay / time.Millisecond),
			LogSize:        parameter.BattleLogSize,
		},
		Shield: Shield{
			MaxHP:            parameter.ShieldMaxHP,
			RegenPerSecond:   parameter.ShieldRegenPerSecond,
			ProtectionRadius: parameter.ShieldProtectionRadius,
			ConeDegrees:      parameter.BlockConeDegrees,
		},
		AI: AI{
			RetargetFrames:     parameter.AIRetargetFrames,
			ApproachFactor:     parameter.AIApproachFactor,
			TurnRateDegrees:    parameter.AITurnRateDegrees,
			BlockChance:        parameter.AIBlockChance,
			BlockThreatDegrees: parameter.AIBlockThreatDegrees,
		},
		Network: Network{
			Address:       parameter.NetworkDefaultAddress,
			StatusAddress: parameter.RelayStatusAddress,
			MaxPeers:      parameter.NetworkMaxPeers,
		},
		Audio: Audio{
			Enabled: true,
			Volume:  parameter.AudioVolume,
		},
	}
}

// Load reads a YAML file over the defaults, an empty path returns the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return fmt.Errorf("%w: arena must have positive size", ErrInvalid)
	case c.Knight.Size <= 0 || c.Knight.Size*2 >= c.Arena.Width:
		return fmt.Errorf("%w: knight size %.1f does not fit the arena", ErrInvalid, c.Knight.Size)
	case c.Knight.Size/2+c.Arena.TopMargin > c.Arena.Height-c.Knight.Size/2:
		return fmt.Errorf("%w: arena height %.1f leaves no room below the top margin", ErrInvalid, c.Arena.Height)
	case c.Knight.Speed < 0:
		return fmt.Errorf("%w: knight speed must not be negative", ErrInvalid)
	case c.Combat.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive", ErrInvalid)
	case c.Combat.SwingFrames <= 0 || c.Combat.CooldownFrames < c.Combat.SwingFrames:
		return fmt.Errorf("%w: cooldown (%d) must cover the swing (%d)", ErrInvalid, c.Combat.CooldownFrames, c.Combat.SwingFrames)
	case c.Combat.EndDelayMs < 0:
		return fmt.Errorf("%w: end delay must not be negative", ErrInvalid)
	case c.Combat.ConeDegrees <= 0 || c.Combat.ConeDegrees > 360:
		return fmt.Errorf("%w: attack cone %.1f out of (0, 360]", ErrInvalid, c.Combat.ConeDegrees)
	case c.Shield.ConeDegrees <= 0 || c.Shield.ConeDegrees > 360:
		return fmt.Errorf("%w: block cone %.1f out of (0, 360]", ErrInvalid, c.Shield.ConeDegrees)
	case c.Shield.MaxHP < 0 || c.Shield.RegenPerSecond < 0 || c.Shield.ProtectionRadius < 0:
		return fmt.Errorf("%w: shield values must not be negative", ErrInvalid)
	case c.AI.RetargetFrames <= 0:
		return fmt.Errorf("%w: ai retarget cadence must be positive", ErrInvalid)
	case c.AI.TurnRateDegrees <= 0:
		return fmt.Errorf("%w: ai turn rate must be positive", ErrInvalid)
	case c.AI.BlockChance < 0 || c.AI.BlockChance > 1:
		return fmt.Errorf("%w: ai block chance %.2f out of [0, 1]", ErrInvalid, c.AI.BlockChance)
	}
	return nil
}

// AttackHalfCone returns half the attack wedge in radians
func (c *Config) AttackHalfCone() float64 { return vmath.Radians(c.Combat.ConeDegrees) / 2 }

// BlockHalfCone returns half the block wedge in radians
func (c *Config) BlockHalfCone() float64 { return vmath.Radians(c.Shield.ConeDegrees) / 2 }

// TurnRate returns the AI per-frame turn cap in radians
func (c *Config) TurnRate() float64 { return vmath.Radians(c.AI.TurnRateDegrees) }

// BlockThreatAngle returns the AI block threat angle in radians
func (c *Config) BlockThreatAngle() float64 { return vmath.Radians(c.AI.BlockThreatDegrees) }

// EndDelay returns the outcome display delay
func (c *Config) EndDelay() time.Duration {
	return time.Duration(c.Combat.EndDelayMs) * time.Millisecond
}

// ShieldRegenPerFrame returns shield HP restored per frame while not blocking
func (c *Config) ShieldRegenPerFrame() float64 {
	return c.Shield.MaxHP * c.Shield.RegenPerSecond / float64(c.Combat.FPS)
}

// ArenaBounds returns the clamp rectangle for a knight center
func (c *Config) ArenaBounds() vmath.Bounds {
	half := c.Knight.Size / 2
	return vmath.Bounds{
		Min: vmath.Vec2{X: half, Y: half + c.Arena.TopMargin},
		Max: vmath.Vec2{X: c.Arena.Width - half, Y: c.Arena.Height - half},
	}
}

// FrameDuration returns the wall time of one tick
func (c *Config) FrameDuration() time.Duration {
	return time.Second / time.Duration(c.Combat.FPS)
}
