package telegram

import (
	"errors"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionList      = "list"
	actionTopic     = "topic"
	actionToggle    = "toggle"
	actionExport    = "export"
	actionFlashcard = "fc"
	actionSettings  = "settings"
	actionProgress  = "progress"
	actionReport    = "report"
	actionReset     = "reset"
)

// Flashcard sub-actions.
const (
	flashcardNew     = "new"
	flashcardFlip    = "flip"
	flashcardEasy    = "easy"
	flashcardHard    = "hard"
	flashcardRestart = "restart"
)

// Settings sub-actions.
const (
	settingsMenu = "menu"
	settingsDark = "dark"
	settingsText = "text"
)

const (
	resetConfirm = "confirm"
	resetCancel  = "cancel"
)

var errMalformedCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// intParam returns the i-th parameter as an integer.
func (cd callbackData) intParam(i int) (int, error) {
	if i >= len(cd.Params) {
		return 0, errMalformedCallback
	}
	n, err := strconv.Atoi(cd.Params[i])
	if err != nil {
		return 0, errMalformedCallback
	}
	return n, nil
}

// param returns the i-th parameter or an empty string.
func (cd callbackData) param(i int) string {
	if i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// buildListCallback opens a page of the topic list. category is the
// 1-based index into the category filter, 0 meaning all topics.
func buildListCallback(category, page int) string {
	return callbackData{
		Action: actionList,
		Params: []string{strconv.Itoa(category), strconv.Itoa(page)},
	}.encode()
}

// buildTopicCallback opens a topic at the given subtopic index.
func buildTopicCallback(topicID, subtopic int) string {
	return callbackData{
		Action: actionTopic,
		Params: []string{strconv.Itoa(topicID), strconv.Itoa(subtopic)},
	}.encode()
}

func buildToggleCallback(topicID, subtopic int) string {
	return callbackData{
		Action: actionToggle,
		Params: []string{strconv.Itoa(topicID), strconv.Itoa(subtopic)},
	}.encode()
}

func buildExportCallback(topicID int) string {
	return callbackData{
		Action: actionExport,
		Params: []string{strconv.Itoa(topicID)},
	}.encode()
}

func buildFlashcardCallback(subAction, sessionID string) string {
	params := []string{subAction}
	if sessionID != "" {
		params = append(params, sessionID)
	}
	return callbackData{
		Action: actionFlashcard,
		Params: params,
	}.encode()
}

// buildSettingsCallback builds callback data for settings-related actions.
func buildSettingsCallback(subAction string, value ...string) string {
	params := []string{subAction}
	params = append(params, value...)
	return callbackData{
		Action: actionSettings,
		Params: params,
	}.encode()
}

// buildProgressCallback builds callback data for opening the progress view.
func buildProgressCallback() string {
	return actionProgress
}

func buildReportCallback() string {
	return actionReport
}

func buildResetConfirmCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetConfirm}}.encode()
}

func buildResetCancelCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetCancel}}.encode()
}
