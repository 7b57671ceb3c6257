// tokens нормализует токены и identity из ответов бекенда.
package tokens

import "encoding/json"

// Pair представляет пару access/refresh токенов
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Empty сообщает, что ни один токен не найден
func (p Pair) Empty() bool {
	return p.AccessToken == "" && p.RefreshToken == ""
}

// matches — кандидат считается найденным, если заполнен хотя бы один токен
func (p Pair) matches() bool {
	return p.AccessToken != "" || p.RefreshToken != ""
}

// tokenFields дублирует поля Pair для разбора разных уровней вложенности
type tokenFields struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (f tokenFields) pair() Pair {
	return Pair{AccessToken: f.AccessToken, RefreshToken: f.RefreshToken}
}

// envelope описывает все известные формы ответа бекенда с токенами
type envelope struct {
	Tokens *tokenFields `json:"tokens"`
	Data   *struct {
		Tokens *tokenFields `json:"tokens"`
		tokenFields
	} `json:"data"`
	tokenFields
}

// ExtractPair извлекает пару токенов из тела ответа бекенда.
// Бекенд кладет токены то в tokens, то в data.tokens, то в
// data.accessToken/data.refreshToken, то на верхний уровень — приоритет
// именно в этом порядке, берется первая найденная пара. Пустой или
// невалидный вход дает пустую пару, функция никогда не паникует.
// Это единственная точка, поглощающая непоследовательность конвертов,
// чтобы вызывающий код о ней не знал.
func ExtractPair(body []byte) Pair {
	if len(body) == 0 {
		return Pair{}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Pair{}
	}

	if env.Tokens != nil && env.Tokens.pair().matches() {
		return env.Tokens.pair()
	}

	if env.Data != nil {
		if env.Data.Tokens != nil && env.Data.Tokens.pair().matches() {
			return env.Data.Tokens.pair()
		}
		if env.Data.pair().matches() {
			return env.Data.pair()
		}
	}

	if env.tokenFields.pair().matches() {
		return env.tokenFields.pair()
	}

	return Pair{}
}
