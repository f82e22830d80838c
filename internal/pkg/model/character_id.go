package model

import "encoding/json"

// CharacterId accepts both the string and numeric spellings the companion app
// sends and normalizes them to the string form the stores key on.
type CharacterId string

func (c *CharacterId) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*c = CharacterId(asString)
		return nil
	}

	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err != nil {
		return err
	}
	*c = CharacterId(asNumber.String())
	return nil
}

func (c CharacterId) String() string {
	return string(c)
}
