package i18n

import "golang.org/x/text/language"

// Op — операция шлюза мутаций.
type Op string

const (
	OpCreate       Op = "create"
	OpUpdateStatus Op = "update_status"
	OpDelete       Op = "delete"
)

var successMessages = map[language.Tag]map[Op]string{
	language.English: {
		OpCreate:       "Order created.",
		OpUpdateStatus: "Order status updated.",
		OpDelete:       "Order deleted.",
	},
	language.Russian: {
		OpCreate:       "Заказ создан.",
		OpUpdateStatus: "Статус заказа обновлён.",
		OpDelete:       "Заказ удалён.",
	},
	language.Norwegian: {
		OpCreate:       "Bestillingen er opprettet.",
		OpUpdateStatus: "Bestillingsstatusen er oppdatert.",
		OpDelete:       "Bestillingen er slettet.",
	},
}

// SuccessMessage — сообщение об успешной операции на ближайшем языке.
func SuccessMessage(lang string, op Op) string {
	_, idx := language.MatchStrings(matcher, lang)
	if msg, ok := successMessages[supported[idx]][op]; ok {
		return msg
	}
	return successMessages[language.English][op]
}
