package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle            = "app_title"
	KeyCreateBox           = "create_box"
	KeyRefresh             = "refresh"
	KeySettings            = "settings"
	KeyAbout               = "about"
	KeyNotFoundTitle       = "not_found_title"
	KeyNotFoundBody        = "not_found_body"
	KeyNoBoxes             = "no_boxes"
	KeyOpenTerminal        = "open_terminal"
	KeyUpgradeBox          = "upgrade_box"
	KeyShowApplications    = "show_applications"
	KeyDeleteBox           = "delete_box"
	KeyReallyDelete        = "really_delete"
	KeyConfirmDeleteFormat = "confirm_delete_format"
	KeyDelete              = "delete"
	KeyCancel              = "cancel"
	KeyCreate              = "create"
	KeySave                = "save"
	KeyBoxName             = "box_name"
	KeyImage               = "image"
	KeyImageHint           = "image_hint"
	KeyStatus              = "status"
	KeyTerminal            = "terminal"
	KeyToolPath            = "tool_path"
	KeyLanguage            = "language"
	KeyBackgroundActions   = "background_actions"
	KeySettingsSaved       = "settings_saved"
	KeyBoxDeleted          = "box_deleted"
	KeyBoxUpgraded         = "box_upgraded"
	KeyTerminalOpened      = "terminal_opened"
	KeyCreateStarted       = "create_started"
	KeyUpgrading           = "upgrading"
	KeyDeleting            = "deleting"
	KeyActionFailed        = "action_failed"
	KeyListFailed          = "list_failed"
	KeyAboutBody           = "about_body"
	KeyHistory             = "history"
	KeyNoHistory           = "no_history"
	KeyClose               = "close"
	KeyRestartRequired     = "restart_required"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns available language codes and names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:            "BoxBuddy",
		KeyCreateBox:           "Create A Distrobox",
		KeyRefresh:             "Refresh",
		KeySettings:            "Settings",
		KeyAbout:               "About BoxBuddy",
		KeyNotFoundTitle:       "Distrobox not found!",
		KeyNotFoundBody:        "Distrobox could not be found, please ensure it is installed!",
		KeyNoBoxes:             "No boxes yet. Create one to get started.",
		KeyOpenTerminal:        "Open Terminal",
		KeyUpgradeBox:          "Upgrade Box",
		KeyShowApplications:    "View Applications",
		KeyDeleteBox:           "Delete Box",
		KeyReallyDelete:        "Really Delete?",
		KeyConfirmDeleteFormat: "Are you sure you want to delete %s?",
		KeyDelete:              "Delete",
		KeyCancel:              "Cancel",
		KeyCreate:              "Create",
		KeySave:                "Save",
		KeyBoxName:             "Name",
		KeyImage:               "Image",
		KeyImageHint:           "Leave empty for the distrobox default",
		KeyStatus:              "Status",
		KeyTerminal:            "Terminal",
		KeyToolPath:            "Distrobox executable",
		KeyLanguage:            "Language",
		KeyBackgroundActions:   "Run actions in the background",
		KeySettingsSaved:       "Settings saved",
		KeyBoxDeleted:          "Box Deleted!",
		KeyBoxUpgraded:         "Box Upgraded!",
		KeyTerminalOpened:      "Terminal opened",
		KeyCreateStarted:       "Creating box in terminal",
		KeyUpgrading:           "Upgrading...",
		KeyDeleting:            "Deleting...",
		KeyActionFailed:        "Action failed",
		KeyListFailed:          "Could not list boxes",
		KeyAboutBody:           "A graphical front-end for distrobox.",
		KeyHistory:             "History",
		KeyNoHistory:           "No actions recorded yet.",
		KeyClose:               "Close",
		KeyRestartRequired:     "The new executable is used after a restart",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:            "BoxBuddy",
		KeyCreateBox:           "Создать контейнер",
		KeyRefresh:             "Обновить",
		KeySettings:            "Настройки",
		KeyAbout:               "О программе BoxBuddy",
		KeyNotFoundTitle:       "Distrobox не найден!",
		KeyNotFoundBody:        "Не удалось найти distrobox, убедитесь, что он установлен!",
		KeyNoBoxes:             "Контейнеров пока нет. Создайте первый.",
		KeyOpenTerminal:        "Открыть терминал",
		KeyUpgradeBox:          "Обновить контейнер",
		KeyShowApplications:    "Приложения",
		KeyDeleteBox:           "Удалить контейнер",
		KeyReallyDelete:        "Точно удалить?",
		KeyConfirmDeleteFormat: "Вы уверены, что хотите удалить %s?",
		KeyDelete:              "Удалить",
		KeyCancel:              "Отмена",
		KeyCreate:              "Создать",
		KeySave:                "Сохранить",
		KeyBoxName:             "Имя",
		KeyImage:               "Образ",
		KeyImageHint:           "Оставьте пустым для образа по умолчанию",
		KeyStatus:              "Статус",
		KeyTerminal:            "Терминал",
		KeyToolPath:            "Исполняемый файл distrobox",
		KeyLanguage:            "Язык",
		KeyBackgroundActions:   "Выполнять действия в фоне",
		KeySettingsSaved:       "Настройки сохранены",
		KeyBoxDeleted:          "Контейнер удалён!",
		KeyBoxUpgraded:         "Контейнер обновлён!",
		KeyTerminalOpened:      "Терминал открыт",
		KeyCreateStarted:       "Создание контейнера в терминале",
		KeyUpgrading:           "Обновление...",
		KeyDeleting:            "Удаление...",
		KeyActionFailed:        "Ошибка действия",
		KeyListFailed:          "Не удалось получить список контейнеров",
		KeyAboutBody:           "Графическая оболочка для distrobox.",
		KeyHistory:             "История",
		KeyNoHistory:           "Действий пока нет.",
		KeyClose:               "Закрыть",
		KeyRestartRequired:     "Новый исполняемый файл будет использован после перезапуска",
	}
}
