package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	Name          string  `yaml:"name"`
	Health        int     `yaml:"health"`
	MoveSpeed     float64 `yaml:"move_speed"`
	MovementRange int     `yaml:"movement_range"`
	AttackDamage  int     `yaml:"attack_damage"`
	AttackRange   int     `yaml:"attack_range"`
	MaxAttacks    int     `yaml:"max_attacks"`
	Texture       string  `yaml:"texture"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// DefaultPlayerSpec mirrors prefabs/player.yaml for callers that run
// without the prefab files.
func DefaultPlayerSpec() *PlayerSpec {
	return &PlayerSpec{
		Name:          "player",
		Health:        100,
		MoveSpeed:     5,
		MovementRange: 5,
		AttackDamage:  10,
		AttackRange:   1,
		MaxAttacks:    5,
		Texture:       "player",
	}
}

type EnemySpec struct {
	Name        string  `yaml:"name"`
	MoveSpeed   float64 `yaml:"move_speed"`
	AttackRange int     `yaml:"attack_range"`
	Texture     string  `yaml:"texture"`
}

func LoadEnemySpec() (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec]("enemy.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func DefaultEnemySpec() *EnemySpec {
	return &EnemySpec{Name: "enemy", MoveSpeed: 3, AttackRange: 1, Texture: "enemy"}
}

// CombatSpec tunes waves. Enemy health for wave N is
// BaseHealth + HealthPerWave*N, damage is BaseDamage + DamagePerWave*N.
type CombatSpec struct {
	EnemiesPerWave   int    `yaml:"enemies_per_wave"`
	MaxWaves         int    `yaml:"max_waves"`
	MinSpawnDistance int    `yaml:"min_spawn_distance"`
	BaseHealth       int    `yaml:"base_health"`
	HealthPerWave    int    `yaml:"health_per_wave"`
	BaseDamage       int    `yaml:"base_damage"`
	DamagePerWave    int    `yaml:"damage_per_wave"`
	AIScript         string `yaml:"ai_script"`
	ArenaMap         string `yaml:"arena_map"`
	CityMap          string `yaml:"city_map"`
}

func LoadCombatSpec() (*CombatSpec, error) {
	spec, err := LoadSpec[CombatSpec]("combat.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func DefaultCombatSpec() *CombatSpec {
	return &CombatSpec{
		EnemiesPerWave:   2,
		MaxWaves:         5,
		MinSpawnDistance: 3,
		BaseHealth:       10,
		HealthPerWave:    5,
		BaseDamage:       2,
		DamagePerWave:    1,
		ArenaMap:         "arena",
		CityMap:          "city",
	}
}

// TileTextureSpec is one palette entry in the editor.
type TileTextureSpec struct {
	ID       string     `yaml:"id"`
	Name     string     `yaml:"name"`
	Walkable bool       `yaml:"walkable"`
	Color    *YAMLColor `yaml:"color"`
}

type PaletteSpec struct {
	Tiles []TileTextureSpec `yaml:"tiles"`
}

func LoadPaletteSpec() (*PaletteSpec, error) {
	spec, err := LoadSpec[PaletteSpec]("palette.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ColorFor returns the palette color for a texture id.
func (p *PaletteSpec) ColorFor(id string) (color.Color, bool) {
	if p == nil || id == "" {
		return nil, false
	}
	for _, t := range p.Tiles {
		if t.ID == id && t.Color != nil && t.Color.Color != nil {
			return t.Color.Color, true
		}
	}
	return nil, false
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
