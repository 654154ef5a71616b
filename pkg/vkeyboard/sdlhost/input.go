package sdlhost

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/veandco/go-sdl2/sdl"
)

const MappingPathEnvVar = "VKEYBOARD_INPUT_MAPPING"

// Button is a navigation action produced by a keyboard key or a gamepad button.
type Button int

const (
	ButtonNone Button = iota
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonPress // Presses the key under the cursor
	ButtonClose // Dismisses the keyboard
	ButtonNext  // Focuses the next field
)

type InputMapping struct {
	KeyboardMap         map[sdl.Keycode]Button
	ControllerButtonMap map[sdl.GameControllerButton]Button
}

// Mapping is the JSON form of an InputMapping. Keys are SDL codes and values
// are Button values.
type Mapping struct {
	KeyboardMap         map[int]int `json:"keyboard_map"`
	ControllerButtonMap map[int]int `json:"controller_button_map"`
}

func DefaultInputMapping() *InputMapping {
	return &InputMapping{
		KeyboardMap: map[sdl.Keycode]Button{
			sdl.K_UP:     ButtonUp,
			sdl.K_DOWN:   ButtonDown,
			sdl.K_LEFT:   ButtonLeft,
			sdl.K_RIGHT:  ButtonRight,
			sdl.K_RETURN: ButtonPress,
			sdl.K_ESCAPE: ButtonClose,
			sdl.K_TAB:    ButtonNext,
		},
		ControllerButtonMap: map[sdl.GameControllerButton]Button{
			sdl.CONTROLLER_BUTTON_DPAD_UP:    ButtonUp,
			sdl.CONTROLLER_BUTTON_DPAD_DOWN:  ButtonDown,
			sdl.CONTROLLER_BUTTON_DPAD_LEFT:  ButtonLeft,
			sdl.CONTROLLER_BUTTON_DPAD_RIGHT: ButtonRight,
			sdl.CONTROLLER_BUTTON_A:          ButtonPress,
			sdl.CONTROLLER_BUTTON_B:          ButtonClose,
			sdl.CONTROLLER_BUTTON_X:          ButtonNext,
		},
	}
}

// LoadInputMapping reads a mapping from the file named by
// VKEYBOARD_INPUT_MAPPING, or returns the default mapping when it is unset.
func LoadInputMapping() (*InputMapping, error) {
	path := os.Getenv(MappingPathEnvVar)
	if path == "" {
		return DefaultInputMapping(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input mapping: %w", err)
	}
	return LoadInputMappingFromBytes(data)
}

func LoadInputMappingFromBytes(data []byte) (*InputMapping, error) {
	var serializable Mapping
	if err := json.Unmarshal(data, &serializable); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	mapping := &InputMapping{
		KeyboardMap:         make(map[sdl.Keycode]Button, len(serializable.KeyboardMap)),
		ControllerButtonMap: make(map[sdl.GameControllerButton]Button, len(serializable.ControllerButtonMap)),
	}
	for code, button := range serializable.KeyboardMap {
		mapping.KeyboardMap[sdl.Keycode(code)] = Button(button)
	}
	for code, button := range serializable.ControllerButtonMap {
		mapping.ControllerButtonMap[sdl.GameControllerButton(code)] = Button(button)
	}
	return mapping, nil
}

// Translate returns the action for a key or gamepad button press. Releases
// and unmapped inputs yield ButtonNone.
func (m *InputMapping) Translate(event sdl.Event) Button {
	switch e := event.(type) {
	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN {
			return m.KeyboardMap[e.Keysym.Sym]
		}
	case *sdl.ControllerButtonEvent:
		if e.Type == sdl.CONTROLLERBUTTONDOWN {
			return m.ControllerButtonMap[sdl.GameControllerButton(e.Button)]
		}
	}
	return ButtonNone
}

// OpenControllers opens every attached joystick SDL recognizes as a game
// controller. sdl.INIT_GAMECONTROLLER must have been initialized.
func OpenControllers(logger *slog.Logger) []*sdl.GameController {
	var controllers []*sdl.GameController

	numJoysticks := sdl.NumJoysticks()
	for i := 0; i < numJoysticks; i++ {
		if !sdl.IsGameController(i) {
			logger.Debug("Skipping joystick without a controller mapping", "index", i)
			continue
		}
		controller := sdl.GameControllerOpen(i)
		if controller == nil {
			logger.Error("Failed to open game controller", "index", i)
			continue
		}
		logger.Debug("Opened game controller", "index", i, "name", controller.Name())
		controllers = append(controllers, controller)
	}

	return controllers
}
