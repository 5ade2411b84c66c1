package dbc

import (
	"sort"
	"strings"
)

// Loader decodes a raw table into its typed *File[T].
type Loader func(data []byte) (any, error)

func loader[T any](s Schema[T]) Loader {
	return func(data []byte) (any, error) {
		return Load(s, data)
	}
}

var registry = map[string]Loader{}

func register[T any](s Schema[T]) {
	registry[strings.ToLower(s.Name)] = loader(s)
}

func init() {
	register(AreaTableSchema)
	register(BattlemasterListSchema)
	register(GameObjectDisplayInfoSchema)
	register(GroundEffectDoodadSchema)
	register(GroundEffectTextureSchema)
	register(LightSchema)
	register(LightParamsSchema)
	register(LightSkyboxSchema)
	register(LoadingScreensSchema)
	register(MapSchema)
	register(PvpDifficultySchema)
	register(SpellIconSchema)
	register(SpellVisualEffectNameSchema)
	register(TalentSchema)
	register(TalentTabSchema)
}

// Lookup returns the loader for a table file name such as "AreaTable.dbc".
// Directory components are ignored and matching is case-insensitive.
func Lookup(fileName string) (Loader, bool) {
	name := fileName
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	l, ok := registry[strings.ToLower(name)]
	return l, ok
}

// Names lists the registered table file names in lower case, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
