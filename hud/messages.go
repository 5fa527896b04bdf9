// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hud

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. English is the fallback text.
const (
	msgMoves  = "Moves: %d"
	msgSolved = "Solved in %d moves!"
	msgHint   = "Hint: row %d, column %d"
	msgNoHint = "No solution from here"
	msgNew    = "Press N for a new game"
)

func init() {
	translations := map[language.Tag]map[string]string{
		language.German: {
			msgMoves:  "Züge: %d",
			msgSolved: "Gelöst in %d Zügen!",
			msgHint:   "Tipp: Zeile %d, Spalte %d",
			msgNoHint: "Von hier aus nicht lösbar",
			msgNew:    "N drücken für ein neues Spiel",
		},
		language.French: {
			msgMoves:  "Coups : %d",
			msgSolved: "Résolu en %d coups !",
			msgHint:   "Indice : ligne %d, colonne %d",
			msgNoHint: "Aucune solution d'ici",
			msgNew:    "Appuyez sur N pour une nouvelle partie",
		},
	}
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := message.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
}

// Supported lists the languages with translated messages.
var Supported = []language.Tag{language.English, language.German, language.French}

var matcher = language.NewMatcher(Supported)

// Match returns the best supported language for an Accept-Language style
// list or a POSIX locale such as "de_DE.UTF-8". Unknown input selects
// English.
func Match(pref string) language.Tag {
	if i := strings.IndexAny(pref, ".@"); i >= 0 {
		pref = pref[:i]
	}
	pref = strings.ReplaceAll(pref, "_", "-")
	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, _ := matcher.Match(tags...)
	return Supported[idx]
}
