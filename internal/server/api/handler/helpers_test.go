package handler_test

import "github.com/Alia5/netpad/apitypes"

func samplePayload() apitypes.ControllerPayload {
	return apitypes.ControllerPayload{
		RStick:   &apitypes.StickGroup{X: 0, Y: -60},
		Shoulder: &apitypes.ShoulderGroup{ZR: true},
	}
}
