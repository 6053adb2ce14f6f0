package speech

var noNetworkPhrases = []string{
	"Es ist leider kein Internet verfügbar.",
	"Ich bin nicht mit dem Internet verbunden.",
	"Es ist kein Internet vorhanden.",
}

// lookOutsidePrefix is prepended to a no-network answer about the default location
const lookOutsidePrefix = "Schau doch aus dem Fenster. "

var noLocationOrKeyPhrases = []string{
	"Wetter konnte nicht abgerufen werden. Entweder gibt es den Ort nicht, oder der API-Schlüssel ist ungültig.",
	"Fehler beim Abrufen. Entweder gibt es den Ort nicht, oder der API-Schlüssel ist ungültig.",
}

var genericErrorPhrases = []string{
	"Es ist ein Fehler aufgetreten.",
	"Hier ist ein Fehler aufgetreten.",
}

const (
	fullTemplate = "Wetter heute%s: %s. " +
		"Aktuelle Temperatur ist %d Grad. " +
		"Höchsttemperatur: %d Grad. " +
		"Tiefsttemperatur: %d Grad."

	conditionTemplate = "Wetter heute%s: %s."

	temperatureTemplate = "%s hat es aktuell %d Grad. " +
		"Heute wird die Höchsttemperatur %d Grad sein " +
		"und die Tiefsttemperatur %d Grad."

	rainWarning = " Es könnte regnen."
	snowWarning = " Es könnte schneien."
)

// Substrings of a condition description that already announce precipitation
var (
	rainWords = []string{"rain", "regen"}
	snowWords = []string{"snow", "schnee"}
)
