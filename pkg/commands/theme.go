package commands

import "fmt"

// HandleThemeCommand shows or changes the dark mode preference
func HandleThemeCommand(env *Env, value string) error {
	var err error
	dark := env.Theme.Get()

	switch value {
	case "":
	case "dark":
		dark, err = true, env.Theme.Set(true)
	case "light":
		dark, err = false, env.Theme.Set(false)
	case "toggle":
		dark, err = env.Theme.Toggle()
	default:
		return fmt.Errorf("unknown theme: %s (use dark, light or toggle)", value)
	}
	if err != nil {
		return err
	}

	name := "light"
	if dark {
		name = "dark"
	}
	env.printf("Theme: %s\n", name)
	return nil
}
