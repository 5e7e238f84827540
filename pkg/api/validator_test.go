package api

import "testing"

func TestMapRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     MapRequest
		wantErr bool
	}{
		{"empty uses defaults", MapRequest{}, false},
		{"full", MapRequest{Width: 40, Height: 30, MinRoom: SizeView{3, 3}, MaxRoom: SizeView{9, 9}}, false},
		{"negative width", MapRequest{Width: -1}, true},
		{"too large", MapRequest{Width: MaxMapSide + 1, Height: 20}, true},
		{"negative room", MapRequest{MaxRoom: SizeView{W: -4}}, true},
		{"long name", MapRequest{Name: string(make([]byte, MaxNameLen+1))}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Validator = tt.req
			err := v.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
