package config

// StageConfig is the root config for stage JSON files
type StageConfig struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	PlayerSpawn *CameraConfig                `json:"playerSpawn,omitempty"`
	Layers      LayersConfig                 `json:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping"`
}

type LayersConfig struct {
	Walls []string `json:"walls"`
}

type TileMappingConfig struct {
	Type     string `json:"type"` // "wall" or "empty"
	Material int    `json:"material,omitempty"`
}
