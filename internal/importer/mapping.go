package importer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"lorekeep/internal/models"
)

type monsterIndex struct {
	Count   int          `json:"count"`
	Results []monsterRef `json:"results"`
}

type monsterRef struct {
	Index string `json:"index"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

// monsterDetail mirrors the 5e API document. Several fields are
// polymorphic across monsters (plain value in one document, object or
// list in the next), so those stay raw until mapping.
type monsterDetail struct {
	Name      string `json:"name"`
	Size      string `json:"size"`
	Type      string `json:"type"`
	Alignment string `json:"alignment"`

	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
	HitPoints    int `json:"hit_points"`

	ChallengeRating json.RawMessage `json:"challenge_rating"`
	ArmorClass      json.RawMessage `json:"armor_class"`

	Actions          []apiAction `json:"actions"`
	LegendaryActions []apiAction `json:"legendary_actions"`
	SpecialAbilities []apiAction `json:"special_abilities"`
	Reactions        []apiAction `json:"reactions"`

	Proficiencies []apiProficiency `json:"proficiencies"`

	DamageResistances   []json.RawMessage `json:"damage_resistances"`
	DamageImmunities    []json.RawMessage `json:"damage_immunities"`
	ConditionImmunities []json.RawMessage `json:"condition_immunities"`

	Senses    map[string]any `json:"senses"`
	Languages string         `json:"languages"`
}

type apiAction struct {
	Name        string      `json:"name"`
	Desc        string      `json:"desc"`
	AttackBonus *int        `json:"attack_bonus"`
	Damage      []apiDamage `json:"damage"`
	DC          *apiDC      `json:"dc"`
}

type apiDamage struct {
	DamageDice string   `json:"damage_dice"`
	DamageType nameOnly `json:"damage_type"`
}

type apiDC struct {
	DCValue int      `json:"dc_value"`
	DCType  nameOnly `json:"dc_type"`
}

type apiProficiency struct {
	Value       int      `json:"value"`
	Proficiency nameOnly `json:"proficiency"`
}

type nameOnly struct {
	Name string `json:"name"`
}

// action is the shape stored in the character's JSON text columns.
type action struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AttackBonus *int      `json:"attack_bonus,omitempty"`
	Damage      []string  `json:"damage,omitempty"`
	DC          *actionDC `json:"dc,omitempty"`
}

type actionDC struct {
	DCValue int    `json:"dc_value"`
	DCType  string `json:"dc_type"`
}

func (d monsterDetail) toCharacter() models.Character {
	description := d.Size + " " + d.Type
	if d.Alignment != "" && d.Alignment != "neutral" {
		description += ", " + d.Alignment
	}

	hp := d.HitPoints
	if hp == 0 {
		hp = 1
	}

	return models.Character{
		Name:          d.Name,
		CharacterType: "Monster",
		Description:   description,

		Strength:     statOrDefault(d.Strength),
		Dexterity:    statOrDefault(d.Dexterity),
		Constitution: statOrDefault(d.Constitution),
		Intelligence: statOrDefault(d.Intelligence),
		Wisdom:       statOrDefault(d.Wisdom),
		Charisma:     statOrDefault(d.Charisma),

		ArmorClass: parseArmorClass(d.ArmorClass),
		HitPoints:  hp,

		ChallengeRating: parseChallengeRating(d.ChallengeRating),
		CreatureType:    creatureTypeOrDefault(d.Type),
		IsOfficial:      true,

		Actions:          encodeActions(d.Actions),
		LegendaryActions: encodeActions(d.LegendaryActions),
		SpecialAbilities: encodeActions(d.SpecialAbilities),
		Reactions:        encodeActions(d.Reactions),
		Skills:           encodeSkills(d.Proficiencies),

		DamageResistances:   joinNamed(d.DamageResistances),
		DamageImmunities:    joinNamed(d.DamageImmunities),
		ConditionImmunities: joinNamed(d.ConditionImmunities),
		Senses:              formatSenses(d.Senses),
		Languages:           d.Languages,
	}
}

func statOrDefault(v int) int {
	if v == 0 {
		return 10
	}
	return v
}

func creatureTypeOrDefault(t string) string {
	if t == "" {
		return "beast"
	}
	return t
}

// parseChallengeRating accepts a plain number (0.25, 5) or an object
// with a rating field.
func parseChallengeRating(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "0"
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	var obj struct {
		Rating any `json:"rating"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Rating != nil {
		return fmt.Sprintf("%v", obj.Rating)
	}
	return "0"
}

// parseArmorClass accepts a plain int or a list of {value, ...}
// entries, taking the first.
func parseArmorClass(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 10
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil && n > 0 {
		return n
	}
	var list []struct {
		Value int `json:"value"`
	}
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 && list[0].Value > 0 {
		return list[0].Value
	}
	return 10
}

func encodeActions(in []apiAction) models.JSONText {
	if len(in) == 0 {
		return ""
	}
	out := make([]action, 0, len(in))
	for _, a := range in {
		entry := action{
			Name:        a.Name,
			Description: a.Desc,
			AttackBonus: a.AttackBonus,
		}
		for _, dmg := range a.Damage {
			text := dmg.DamageDice
			if dmg.DamageType.Name != "" {
				text += " " + dmg.DamageType.Name
			}
			entry.Damage = append(entry.Damage, text)
		}
		if a.DC != nil {
			entry.DC = &actionDC{DCValue: a.DC.DCValue, DCType: a.DC.DCType.Name}
		}
		out = append(out, entry)
	}
	return models.EncodeJSONText(out)
}

// encodeSkills keeps only "Skill: X" proficiencies as a name->bonus map.
func encodeSkills(profs []apiProficiency) models.JSONText {
	skills := make(map[string]int)
	for _, p := range profs {
		if name, ok := strings.CutPrefix(p.Proficiency.Name, "Skill: "); ok {
			skills[name] = p.Value
		}
	}
	if len(skills) == 0 {
		return ""
	}
	return models.EncodeJSONText(skills)
}

// joinNamed flattens a list of strings or {name}/{type} objects into a
// comma-separated string.
func joinNamed(items []json.RawMessage) string {
	var parts []string
	for _, raw := range items {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			parts = append(parts, s)
			continue
		}
		var obj struct {
			Name string `json:"name"`
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil {
			if obj.Name != "" {
				parts = append(parts, obj.Name)
			} else if obj.Type != "" {
				parts = append(parts, obj.Type)
			}
		}
	}
	return strings.Join(parts, ", ")
}

func formatSenses(senses map[string]any) string {
	if len(senses) == 0 {
		return ""
	}
	keys := make([]string, 0, len(senses))
	for k := range senses {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		v := senses[k]
		if k == "passive_perception" {
			parts = append(parts, fmt.Sprintf("passive Perception %v", v))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %v", strings.ReplaceAll(k, "_", " "), v))
	}
	return strings.Join(parts, ", ")
}
