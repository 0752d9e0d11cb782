package demo

import (
	"SpaceBox/internal/logger"
	"SpaceBox/internal/spacebox"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

type Action int

const (
	ActionNone Action = iota
	ActionTogglePointStars
	ActionToggleBrightStars
	ActionToggleNebula
	ActionToggleSun
	ActionSmallerCube
	ActionLargerCube
	ActionRegenerate
)

var actionNames = map[Action]string{
	ActionTogglePointStars:  "toggle point stars",
	ActionToggleBrightStars: "toggle bright stars",
	ActionToggleNebula:      "toggle nebula",
	ActionToggleSun:         "toggle sun",
	ActionSmallerCube:       "smaller cube",
	ActionLargerCube:        "larger cube",
	ActionRegenerate:        "regenerate",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

// KeyBindings maps keys to the option panel actions.
var KeyBindings = map[glfw.Key]Action{
	glfw.Key1:            ActionTogglePointStars,
	glfw.Key2:            ActionToggleBrightStars,
	glfw.Key3:            ActionToggleNebula,
	glfw.Key4:            ActionToggleSun,
	glfw.KeyLeftBracket:  ActionSmallerCube,
	glfw.KeyRightBracket: ActionLargerCube,
	glfw.KeyG:            ActionRegenerate,
}

// Controls is the keyboard option panel. Option changes apply to the next generation;
// generation itself runs in Update so the cube renders in the same frame.
type Controls struct {
	gen        *spacebox.Generator
	regenerate bool

	// OnChange receives the status line after every applied action.
	OnChange func(status string)
}

const keyHelp = "WASD + right mouse to move | 1-4 toggle | [ ] size | G regenerate"

func NewControls(gen *spacebox.Generator) *Controls {
	return &Controls{gen: gen}
}

// Start requests the first sky.
func (c *Controls) Start() {
	c.regenerate = true
	c.notify()
}

func (c *Controls) Update() {
	if !c.regenerate {
		return
	}
	c.regenerate = false
	if err := c.gen.Generate(); err != nil {
		logger.Log.Error("Skybox generation failed", zap.Error(err))
	}
}

func (c *Controls) HandleKey(key glfw.Key) {
	if action, ok := KeyBindings[key]; ok {
		c.Apply(action)
	}
}

func (c *Controls) Apply(action Action) {
	cfg := &c.gen.Config
	switch action {
	case ActionTogglePointStars:
		cfg.PointStars = !cfg.PointStars
	case ActionToggleBrightStars:
		cfg.BrightStars = !cfg.BrightStars
	case ActionToggleNebula:
		cfg.Nebula = !cfg.Nebula
	case ActionToggleSun:
		cfg.Sun = !cfg.Sun
	case ActionSmallerCube:
		cfg.CubeSize = spacebox.StepCubeSize(cfg.CubeSize, -1)
	case ActionLargerCube:
		cfg.CubeSize = spacebox.StepCubeSize(cfg.CubeSize, 1)
	case ActionRegenerate:
		c.regenerate = true
	default:
		return
	}

	logger.Log.Info("Option changed",
		zap.Stringer("action", action),
		zap.Bool("pointStars", cfg.PointStars),
		zap.Bool("brightStars", cfg.BrightStars),
		zap.Bool("nebula", cfg.Nebula),
		zap.Bool("sun", cfg.Sun),
		zap.Int("cubeSize", cfg.CubeSize))
	c.notify()
}

// Status is the key help followed by the current options.
func (c *Controls) Status() string {
	cfg := c.gen.Config
	return fmt.Sprintf("SpaceBox | %s | stars:%s bright:%s nebula:%s sun:%s size:%d",
		keyHelp, onOff(cfg.PointStars), onOff(cfg.BrightStars), onOff(cfg.Nebula), onOff(cfg.Sun), cfg.CubeSize)
}

func (c *Controls) notify() {
	if c.OnChange != nil {
		c.OnChange(c.Status())
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// RegeneratePending reports whether the next Update will generate.
func (c *Controls) RegeneratePending() bool {
	return c.regenerate
}
