package metadata

import (
	"regexp"
	"strings"
)

const (
	dayPattern       = `(?P<day>[1-9]|0[1-9]|1[0-9]|2[0-9]|3[0-1])`
	monthNamePattern = `janvier|janv|jan|février|fév|mars|avril|avr|mai|juin|juillet` +
		`|juil|août|septembre|sept|octobre|oct|novembre|nov|décembre|déc`
	monthPattern = `(?P<month>[1-9]|0[1-9]|1[0-2]|` + monthNamePattern + `)`
	yearPattern  = `(?P<year>19[0-9][0-9]|20[0-9][0-9]|[0-9][0-9])`
	sepPattern   = `(?:/|-|\.|:|\s)`
)

// placeNames are the hospital locations that introduce a date as "<place>, le"
var placeNames = []string{
	`Paris`,
	`Clichy`,
	`(?:Kremlin)?\s*-?Bicêtre`,
	`Créteil`,
	`Boulogne\s*-?(?:Billancourt)?`,
	`Clamart`,
	`Bobigny`,
	`Ivry\s*-?sur\s*-?Seine`,
	`Issy\s*-?les\s*-?Moulineaux`,
	`Draveil`,
	`Limeil`,
	`Champcueil`,
	`Bondy`,
	`Colombes`,
	`Hendaye`,
	`Berck\s*-?sur\s*-?mer`,
	`Villejuif`,
	`Labruyere`,
	`Garches`,
	`Sevran`,
	`Hyères`,
	`Gennevilliers`,
	`BERCK S/MER`,
}

// contextPhrases introduce a date. Order matters: the first alternative that
// matches at a position wins.
var contextPhrases = []string{
	`Date de compte rendu`,
	`Compte rendu fait le`,
	`Date (?:d|de l)['’]examen`,
	`Examen (?:réalisé le|du)`,
	`courrier patient du`,
	`Prochaine\s*(?:Consultation|CS)\s*(?:du|le)`,
	`Date\s*(?:du bilan|du jour)`,
	`Ordonnance du`,
	`Heure de prise en charge IAO`,
	`Date d['’]entrée au SAU`,
	`Heure de décroché`,
	`Admission du`,
	`Vu(?:e|\(e\))?\s*le`,
	`Entré(?:e|\(e\))?\s*le`,
	`Sorti(?:e|\(e\))?\s*le`,
	`Date d['´’]intervention`,
	`Intervention du`,
	`Posée?\s*le`,
	`Réalisée?\s*le`,
	`Prévue?\s*le`,
	`Hospitalisé\s*le`,
	`Hopistalisation\s*du`,
	`Hospitalisation de jour\s*(?:le|du)`,
	`Compte rendu d['’]hospitalisation du`,
	`Compte rendu d['’]hospitalisation du .* au`,
	`Document créé le`,
	`Saisie? le`,
	`Editée? le`,
	`Enregistrée? le`,
	`Dictée? le`,
	`Cr tapé le`,
	`imprimée? le`,
	`Edition\s*(?:sécurisée)?\s*du`,
	`Signé\s*(?:électroniquement)?\s*le`,
	`Compte-rendu signé le`,
	`validée?\s*le`,
	`RCP du`,
	`Date RCP`,
	`Date du test`,
	`test\s*(?:du)?`,
	`Prélevée?\s*le`,
	`Fait le`,
	`Effectuée?\s*le`,
	`Date de réception`,
	`Reçue?\s*le`,
	`(?:` + strings.Join(placeNames, "|") + `)\s*(?:cedex)?,?\s*le`,
	`Date de Naissance|D\.D\.N|DDN|Né(?:e|\(e\))?\s*le`,
}

// Compiled once at package initialization and never modified
var (
	datePattern = regexp.MustCompile(
		`(?i)` + dayPattern + sepPattern + monthPattern + sepPattern + yearPattern)

	contextPattern = regexp.MustCompile(
		`(?i)(?:` + strings.Join(contextPhrases, "|") + `)\s*:?\s*`)

	dayIndex   = datePattern.SubexpIndex("day")
	monthIndex = datePattern.SubexpIndex("month")
	yearIndex  = datePattern.SubexpIndex("year")
)

// monthNames maps every accepted month spelling to its number
var monthNames = map[string]int{
	"janvier": 1, "janv": 1, "jan": 1,
	"février": 2, "fév": 2,
	"mars":  3,
	"avril": 4, "avr": 4,
	"mai":     5,
	"juin":    6,
	"juillet": 7, "juil": 7,
	"août":      8,
	"septembre": 9, "sept": 9,
	"octobre": 10, "oct": 10,
	"novembre": 11, "nov": 11,
	"décembre": 12, "déc": 12,
}
