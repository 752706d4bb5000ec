package devices

type (
	// Gateway is an in-store BLE gateway attached to a shop
	Gateway struct {
		GatewayID   string  `json:"gateway_id"`
		Longitude   float64 `json:"longitude"`
		Latitude    float64 `json:"latitude"`
		Altitude    string  `json:"altitude"`
		GwName      string  `json:"gw_name"`
		GwIPAddress string  `json:"gw_ip_address"`
		GwModel     string  `json:"gw_model"`
		GwFirmware  string  `json:"gw_firmware"`
		GwSerial    string  `json:"gw_serial"`
		GwLocation  string  `json:"gw_location"`
		VendorCode  string  `json:"vendor_code"`
		ShopOwnerID string  `json:"shop_owner_id"`

		RegisteredOn string  `json:"registered_on"`
		LastUpdated  *string `json:"last_updated"`
	}

	GatewayRequest struct {
		Longitude   float64 `json:"longitude" validate:"min=-180,max=180"`
		Latitude    float64 `json:"latitude" validate:"min=-90,max=90"`
		Altitude    string  `json:"altitude" validate:"required"`
		GwName      string  `json:"gw_name" validate:"required"`
		GwIPAddress string  `json:"gw_ip_address" validate:"required,ip"`
		GwModel     string  `json:"gw_model" validate:"required"`
		GwFirmware  string  `json:"gw_firmware" validate:"required"`
		GwSerial    string  `json:"gw_serial" validate:"required"`
		GwLocation  string  `json:"gw_location" validate:"required"`
		VendorCode  string  `json:"vendor_code" validate:"required"`
	}

	GatewayUpdate struct {
		Latitude    *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
		Longitude   *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
		Altitude    *string  `json:"altitude"`
		GwName      *string  `json:"gw_name"`
		GwIPAddress *string  `json:"gw_ip_address" validate:"omitempty,ip"`
		GwModel     *string  `json:"gw_model"`
		GwFirmware  *string  `json:"gw_firmware"`
		GwSerial    *string  `json:"gw_serial"`
		GwLocation  *string  `json:"gw_location"`
		VendorCode  *string  `json:"vendor_code"`
	}

	// Beacon is a BLE tag reporting through a gateway
	Beacon struct {
		BeaconID       string `json:"beacon_id"`
		MacID          string `json:"mac_id"`
		DeviceID       string `json:"device_id"`
		Battery        int    `json:"battery"`
		Status         string `json:"status"`
		GatewayOwnerID string `json:"gateway_owner_id"`

		RegisteredOn string  `json:"registered_on"`
		LastUpdated  *string `json:"last_updated"`
	}

	BeaconRequest struct {
		MacID    string `json:"mac_id" validate:"required,mac"`
		DeviceID string `json:"device_id" validate:"required"`
		Battery  int    `json:"battery" validate:"min=0,max=100"`
		Status   string `json:"status" validate:"required"`
	}

	BeaconUpdate struct {
		MacID    *string `json:"mac_id" validate:"omitempty,mac"`
		DeviceID *string `json:"device_id"`
		Battery  *int    `json:"battery" validate:"omitempty,min=0,max=100"`
		Status   *string `json:"status"`
	}
)

// Apply copies every set field of the update onto g and reports whether anything was set
func (u *GatewayUpdate) Apply(g *Gateway) bool {
	changed := false
	setString := func(dst, src *string) {
		if src != nil {
			*dst = *src
			changed = true
		}
	}
	setFloat := func(dst, src *float64) {
		if src != nil {
			*dst = *src
			changed = true
		}
	}

	setFloat(&g.Latitude, u.Latitude)
	setFloat(&g.Longitude, u.Longitude)
	setString(&g.Altitude, u.Altitude)
	setString(&g.GwName, u.GwName)
	setString(&g.GwIPAddress, u.GwIPAddress)
	setString(&g.GwModel, u.GwModel)
	setString(&g.GwFirmware, u.GwFirmware)
	setString(&g.GwSerial, u.GwSerial)
	setString(&g.GwLocation, u.GwLocation)
	setString(&g.VendorCode, u.VendorCode)
	return changed
}

// Apply copies every set field of the update onto b and reports whether anything was set
func (u *BeaconUpdate) Apply(b *Beacon) bool {
	changed := false
	if u.MacID != nil {
		b.MacID = *u.MacID
		changed = true
	}
	if u.DeviceID != nil {
		b.DeviceID = *u.DeviceID
		changed = true
	}
	if u.Battery != nil {
		b.Battery = *u.Battery
		changed = true
	}
	if u.Status != nil {
		b.Status = *u.Status
		changed = true
	}
	return changed
}
