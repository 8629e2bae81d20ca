package events

import (
	"fmt"
	"math"

	"github.com/Shopify/go-lua"
)

// LoadTable runs a Lua script that returns an opportunity table:
//
//	return {
//	  good = { { id = "treasure", name = "...", description = "...", gold = 500 } },
//	  bad  = { { id = "tax", name = "...", description = "...", gold = -200 } },
//	}
func LoadTable(path string) (Table, error) {
	data, err := runScript(path)
	if err != nil {
		return Table{}, err
	}

	var t Table
	for _, entry := range asSlice(data["good"]) {
		t.Good = append(t.Good, decodeEvent(entry))
	}
	for _, entry := range asSlice(data["bad"]) {
		t.Bad = append(t.Bad, decodeEvent(entry))
	}
	if err := t.Validate(); err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadBestiary runs a Lua script that returns a list of monster specs:
//
//	return {
//	  { name = "Forest Slime", hp = 60, attack = 10, defense = 6, exp = 20, gold = 30 },
//	}
func LoadBestiary(path string) (Bestiary, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return Bestiary{}, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return Bestiary{}, fmt.Errorf("run lua: %w", err)
	}
	if state.TypeOf(-1) != lua.TypeTable {
		state.Pop(1)
		return Bestiary{}, fmt.Errorf("%s: bestiary script must return a table", path)
	}
	value := tableToGo(state, -1)
	state.Pop(1)

	var b Bestiary
	for _, entry := range asSlice(value) {
		spec, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		b.Specs = append(b.Specs, MonsterSpec{
			Name:       asString(spec["name"]),
			HP:         asInt(spec["hp"]),
			Attack:     asInt(spec["attack"]),
			Defense:    asInt(spec["defense"]),
			ExpReward:  asInt(spec["exp"]),
			GoldReward: asInt(spec["gold"]),
		})
	}
	if err := b.Validate(); err != nil {
		return Bestiary{}, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

func runScript(path string) (map[string]any, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}
	if state.TypeOf(-1) != lua.TypeTable {
		state.Pop(1)
		return nil, fmt.Errorf("%s: script must return a table", path)
	}
	data := tableToMap(state, -1)
	state.Pop(1)
	return data, nil
}

func decodeEvent(entry any) Event {
	m, ok := entry.(map[string]any)
	if !ok {
		return Event{}
	}
	return Event{
		ID:          asString(m["id"]),
		Name:        asString(m["name"]),
		Description: asString(m["description"]),
		GoldDelta:   asInt(m["gold"]),
	}
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

func tableToGo(state *lua.State, index int) any {
	if state.TypeOf(index) != lua.TypeTable {
		return nil
	}

	index = state.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	state.PushNil()
	for state.Next(index) {
		if isArray {
			if state.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := state.ToInteger(-2); ok && idx > 0 {
				count++
				if idx > maxIndex {
					maxIndex = idx
				}
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}

	return tableToMap(state, index)
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
