package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Master of Puppets", "master-of-puppets"},
		{"  Ride  the -- Lightning ", "ride-the-lightning"},
		{"Ария", "ariya"},
		{"Король и Шут", "korol-i-shut"},
		{"Щёлк", "shchyolk"},
		{"Мёртвые Души 1999", "myortvie-dushi-1999"},
		{"AC/DC: Back in Black!", "acdc-back-in-black"},
		{"snake_case stays", "snake_case-stays"},
		{"Motörhead", "motorhead"},
		{"_Sepultura_", "sepultura"},
		{"_-Paranoid", "paranoid"},
		{"Paranoid-_", "paranoid"},
		{"- _Iron Maiden_ -", "iron-maiden"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}
