package workspace

import (
	"path/filepath"

	"swcgen/internal/model"
)

// MasterFile is the conventional master document name.
const MasterFile = "master.yaml"

// NewExample writes a four-module sample project under dir and returns it
// loaded. Layout:
//
//	master.yaml
//	modules/datatypes.yaml
//	modules/interfaces.yaml
//	modules/swc_sensor.yaml
//	modules/swc_monitor.yaml
func NewExample(dir string, opts ...Option) (*Workspace, error) {
	w := New(filepath.Join(dir, MasterFile), "Multi-Module Automotive Project", opts...)
	w.master.Description = "Example project split across multiple YAML files"

	types := &Module{Name: "DataTypes", Description: "Shared data types and scaling definitions"}
	cm := types.AddCompuMethod(model.CompuMethod{Name: "CM_VehicleSpeed", Factor: 0.01, Unit: "km/h"}).UID
	lo, hi := 0.0, 65535.0
	adt := types.AddAppType(model.ApplicationDataType{
		Name:           "VehicleSpeed_T",
		Category:       model.CategoryValue,
		CompuMethodUID: cm,
		MinValue:       &lo,
		MaxValue:       &hi,
		InitValue:      "0",
		ArraySize:      1,
	}).UID
	idt := types.AddImplType(model.ImplementationDataType{Name: "Impl_uint16", BaseType: model.Uint16, ArraySize: 1}).UID
	types.AddMapping(adt, idt)

	ifaces := &Module{Name: "Interfaces", Description: "Shared interface definitions"}
	speed := ifaces.AddInterface(model.Interface{
		Name: "If_VehicleSpeed",
		Kind: model.SenderReceiver,
		DataElements: []model.DataElement{
			{Name: "VehicleSpeed", AppTypeUID: adt, BaseType: model.Uint16, InitValue: "0"},
		},
	}).UID

	sensorMod := &Module{Name: "Swc_SpeedSensor", Description: "Speed sensor software component"}
	sensor := *sensorMod.AddComponent(model.SoftwareComponent{
		Name:        "Swc_SpeedSensor",
		Description: "Reads vehicle speed from sensor",
		Ports:       []model.Port{{Name: "Pp_VehicleSpeed", Direction: model.Provided, InterfaceUID: speed}},
		Runnables:   []model.Runnable{{Name: "Run_ReadSpeed", Trigger: model.TriggerTiming, PeriodMS: 10}},
	})

	monitorMod := &Module{Name: "Swc_SpeedMonitor", Description: "Speed monitoring software component"}
	monitor := *monitorMod.AddComponent(model.SoftwareComponent{
		Name:        "Swc_SpeedMonitor",
		Description: "Monitors vehicle speed",
		Ports:       []model.Port{{Name: "Rp_VehicleSpeed", Direction: model.Required, InterfaceUID: speed}},
		Runnables:   []model.Runnable{{Name: "Run_MonitorSpeed", Trigger: model.TriggerTiming, PeriodMS: 20}},
	})

	for _, m := range []struct {
		mod  *Module
		path string
	}{
		{types, "modules/datatypes.yaml"},
		{ifaces, "modules/interfaces.yaml"},
		{sensorMod, "modules/swc_sensor.yaml"},
		{monitorMod, "modules/swc_monitor.yaml"},
	} {
		if err := w.AddModule(m.mod, m.path); err != nil {
			return nil, err
		}
	}

	w.AddGlobalConnection(model.PortConnection{
		Name:             "Conn_VehicleSpeed",
		ProviderSwcUID:   sensor.UID,
		ProviderPortUID:  sensor.Ports[0].UID,
		RequesterSwcUID:  monitor.UID,
		RequesterPortUID: monitor.Ports[0].UID,
		Description:      "Cross-module connection: Sensor -> Monitor",
	})
	if err := w.SaveMaster(); err != nil {
		return nil, err
	}
	return w, nil
}
