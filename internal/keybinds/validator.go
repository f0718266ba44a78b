package keybinds

import (
	"fmt"
	"sort"
	"strings"
)

// reservedKeys should not be rebound
var reservedKeys = map[string]Action{
	"ctrl+c": ActionQuitForce,
}

// FindConflicts reports keys that a config binds to more than one action in the same context,
// and reserved keys bound to anything else
func FindConflicts(config *Config) []string {
	var conflicts []string

	for context, section := range config.sections() {
		owners := make(map[string][]string)
		for actionStr, keyList := range section {
			for _, key := range splitKeys(keyList) {
				owners[key] = append(owners[key], actionStr)
			}
		}

		for key, actions := range owners {
			if len(actions) > 1 {
				sort.Strings(actions)
				conflicts = append(conflicts, fmt.Sprintf("%s: %q bound to %s", context, key, strings.Join(actions, ", ")))
			}
			if reserved, ok := reservedKeys[key]; ok && (len(actions) > 1 || Action(actions[0]) != reserved) {
				conflicts = append(conflicts, fmt.Sprintf("%s: %q is reserved for %s", context, key, reserved))
			}
		}
	}

	sort.Strings(conflicts)
	return conflicts
}

// ValidateKey checks if a key string is valid
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	for _, mod := range []string{"ctrl+", "alt+", "shift+"} {
		if key == mod {
			return fmt.Errorf("modifier without key: %s", key)
		}
	}

	return nil
}

// ValidateAction checks if an action is known
func ValidateAction(action Action) error {
	if action == "" {
		return fmt.Errorf("action cannot be empty")
	}
	if !Known(action) {
		return fmt.Errorf("unknown action %q", action)
	}
	return nil
}
