package config

// DisplayConfig is the root config for display.json
type DisplayConfig struct {
	Screen   ScreenConfig   `json:"screen"`
	Render   RenderConfig   `json:"render"`
	Camera   CameraConfig   `json:"camera"`
	Movement MovementConfig `json:"movement"`
	Audio    AudioConfig    `json:"audio"`
}

type ScreenConfig struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Scale     int    `json:"scale"`
	Framerate int    `json:"framerate"`
	Title     string `json:"title"`
}

type RenderConfig struct {
	TextureSize    int     `json:"textureSize"`
	TextureCount   int     `json:"textureCount"`
	Textures       bool    `json:"textures"`
	Background     string  `json:"background"`     // "#rrggbb"
	SideMultiplier float64 `json:"sideMultiplier"` // flat shading of side faces
}

// CameraConfig is a start position, view direction and camera plane in cell units
type CameraConfig struct {
	Position  PointConfig `json:"position"`
	Direction PointConfig `json:"direction"`
	Plane     PointConfig `json:"plane"`
}

type PointConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type MovementConfig struct {
	MoveSpeed  float64          `json:"moveSpeed"` // cells per key event
	TurnAngle  float64          `json:"turnAngle"` // radians per key event
	Adaptive   bool             `json:"adaptive"`
	MoveFactor float64          `json:"moveFactor"` // cells per second when adaptive
	TurnFactor float64          `json:"turnFactor"` // radians per second when adaptive
	AutoRotate AutoRotateConfig `json:"autoRotate"`
}

type AutoRotateConfig struct {
	Enabled bool    `json:"enabled"`
	Angle   float64 `json:"angle"` // radians per frame, clockwise
}

type AudioConfig struct {
	Enabled    bool    `json:"enabled"`
	SampleRate int     `json:"sampleRate"`
	BumpHz     float64 `json:"bumpHz"`
	BumpMillis int     `json:"bumpMillis"`
	Volume     float64 `json:"volume"` // 0..1
}
