// Package games lists the supported games and the plugins their engine
// always loads first.
package games

import (
	"sort"
	"strings"
)

// Game describes a game whose load order is managed.
type Game struct {
	// ID is the short identifier used in configuration and URLs.
	ID string `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
	// Natives are the plugins the engine loads unconditionally, in order.
	Natives []string `json:"natives"`
}

var known = map[string]Game{
	"skyrimse": {
		ID:   "skyrimse",
		Name: "Skyrim Special Edition",
		Natives: []string{
			"Skyrim.esm", "Update.esm", "Dawnguard.esm", "HearthFires.esm", "Dragonborn.esm",
			"ccBGSSSE001-Fish.esm", "ccQDRSSE001-SurvivalMode.esl", "ccBGSSSE037-Curios.esl", "ccBGSSSE025-AdvDSGS.esm",
		},
	},
	"skyrimvr": {
		ID:      "skyrimvr",
		Name:    "Skyrim VR",
		Natives: []string{"Skyrim.esm", "Update.esm", "Dawnguard.esm", "HearthFires.esm", "Dragonborn.esm", "SkyrimVR.esm"},
	},
	"skyrim": {
		ID:      "skyrim",
		Name:    "Skyrim",
		Natives: []string{"Skyrim.esm", "Update.esm"},
	},
	"fallout4": {
		ID:   "fallout4",
		Name: "Fallout 4",
		Natives: []string{
			"Fallout4.esm", "DLCRobot.esm", "DLCworkshop01.esm", "DLCCoast.esm", "DLCworkshop02.esm",
			"DLCworkshop03.esm", "DLCNukaWorld.esm", "DLCUltraHighResolution.esm",
		},
	},
	"fallout4vr": {
		ID:      "fallout4vr",
		Name:    "Fallout 4 VR",
		Natives: []string{"Fallout4.esm", "Fallout4_VR.esm"},
	},
	"starfield": {
		ID:      "starfield",
		Name:    "Starfield",
		Natives: []string{"Starfield.esm", "Constellation.esm", "OldMars.esm", "BlueprintShips-Starfield.esm", "SFBGS003.esm", "SFBGS006.esm", "SFBGS007.esm", "SFBGS008.esm"},
	},
	"fallout3": {
		ID:      "fallout3",
		Name:    "Fallout 3",
		Natives: []string{"Fallout3.esm"},
	},
	"falloutnv": {
		ID:      "falloutnv",
		Name:    "Fallout: New Vegas",
		Natives: []string{"FalloutNV.esm"},
	},
	"oblivion": {
		ID:      "oblivion",
		Name:    "Oblivion",
		Natives: []string{"Oblivion.esm"},
	},
}

// Lookup returns the game with the given id. Matching is case-insensitive.
func Lookup(id string) (Game, bool) {
	g, ok := known[strings.ToLower(id)]
	if !ok {
		return Game{}, false
	}
	g.Natives = append([]string(nil), g.Natives...)
	return g, true
}

// IDs returns the ids of all known games in ascending order.
func IDs() []string {
	ids := make([]string, 0, len(known))
	for id := range known {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
