package model

// example.go: Sample automotive project.
//
// Three components: a speed sensor providing vehicle speed, a speed monitor
// consuming it and serving diagnostics, and a diagnostic tester calling that
// service. Every UID is freshly generated on each call.

func ptr(f float64) *float64 { return &f }

// ExampleProject builds the sample project.
func ExampleProject() *Project {
	p := NewProject("Example Automotive Project")
	p.Description = "A sample project demonstrating an AUTOSAR-like configuration with full data type support"

	cmSpeed := p.AddCompuMethod(CompuMethod{
		Name: "CM_VehicleSpeed", Factor: 0.01, Unit: "km/h",
		Description: "Vehicle speed scaling: 0-655.35 km/h",
	}).UID
	p.AddCompuMethod(CompuMethod{
		Name: "CM_Temperature", Factor: 0.1, Offset: -40, Unit: "°C",
		Description: "Temperature scaling: -40 to +215 °C",
	})

	adtSpeed := p.AddAppType(ApplicationDataType{
		Name: "VehicleSpeed_T", Category: CategoryValue, CompuMethodUID: cmSpeed,
		MinValue: ptr(0), MaxValue: ptr(65535), InitValue: "0", ArraySize: 1,
		Description: "Vehicle speed in km/h (physical), scaled by 100",
	}).UID
	adtValid := p.AddAppType(ApplicationDataType{
		Name: "SpeedValid_T", Category: CategoryValue,
		MinValue: ptr(0), MaxValue: ptr(1), InitValue: "0", ArraySize: 1,
		Description: "Speed validity flag",
	}).UID
	adtDiagID := p.AddAppType(ApplicationDataType{
		Name: "DiagId_T", Category: CategoryValue,
		MinValue: ptr(0), MaxValue: ptr(65535), InitValue: "0", ArraySize: 1,
		Description: "Diagnostic data identifier",
	}).UID
	adtStatus := p.AddAppType(ApplicationDataType{
		Name: "DiagStatus_T", Category: CategoryEnum, InitValue: "0", ArraySize: 1,
		EnumLiterals: []EnumLiteral{
			{Name: "DIAG_OK", Value: 0},
			{Name: "DIAG_PENDING", Value: 1},
			{Name: "DIAG_NOT_SUPPORTED", Value: 2},
			{Name: "DIAG_ERROR", Value: 3},
		},
		Description: "Diagnostic operation status",
	}).UID

	idtU16 := p.AddImplType(ImplementationDataType{
		Name: "Impl_uint16", BaseType: Uint16, ArraySize: 1,
		Description: "16-bit unsigned integer",
	}).UID
	idtBool := p.AddImplType(ImplementationDataType{
		Name: "Impl_boolean", BaseType: Boolean, ArraySize: 1,
		Description: "Boolean type",
	}).UID
	idtU8 := p.AddImplType(ImplementationDataType{
		Name: "Impl_uint8", BaseType: Uint8, ArraySize: 1,
		Description: "8-bit unsigned integer",
	}).UID

	p.AddMapping(adtSpeed, idtU16)
	p.AddMapping(adtValid, idtBool)
	p.AddMapping(adtDiagID, idtU16)
	p.AddMapping(adtStatus, idtU8)

	ifSpeed := p.AddInterface(Interface{
		Name: "If_VehicleSpeed", Kind: SenderReceiver,
		Description: "Vehicle speed data interface",
		DataElements: []DataElement{
			{Name: "VehicleSpeed", AppTypeUID: adtSpeed, BaseType: Uint16, InitValue: "0",
				Description: "Vehicle speed in km/h * 100"},
			{Name: "SpeedValid", AppTypeUID: adtValid, BaseType: Boolean, InitValue: "false",
				Description: "Speed validity flag"},
		},
	}).UID
	ifDiag := p.AddInterface(Interface{
		Name: "If_DiagService", Kind: ClientServer,
		Description: "Diagnostic service interface",
		Operations: []Operation{{
			Name: "ReadDataById", ReturnTypeUID: adtStatus, ReturnBaseType: Uint8,
			Description: "Read diagnostic data by ID",
			Arguments: []Argument{
				{Name: "dataId", Direction: In, AppTypeUID: adtDiagID, BaseType: Uint16,
					Description: "Data identifier to read"},
				{Name: "data", Direction: Out, BaseType: Uint8,
					Description: "Output data buffer"},
			},
		}},
	}).UID

	sensor := *p.AddComponent(SoftwareComponent{
		Name: "Swc_SpeedSensor", Description: "Speed sensor software component",
		Ports: []Port{{Name: "Pp_VehicleSpeed", Direction: Provided, InterfaceUID: ifSpeed,
			Description: "Provides vehicle speed"}},
		Runnables: []Runnable{{Name: "Run_ReadSpeed", Trigger: TriggerTiming, PeriodMS: 10,
			Description: "Read speed sensor every 10ms"}},
	})
	monitor := *p.AddComponent(SoftwareComponent{
		Name: "Swc_SpeedMonitor", Description: "Speed monitoring component",
		Ports: []Port{
			{Name: "Rp_VehicleSpeed", Direction: Required, InterfaceUID: ifSpeed,
				Description: "Receives vehicle speed"},
			{Name: "Ps_DiagService", Direction: Provided, InterfaceUID: ifDiag,
				Description: "Provides diagnostic services"},
		},
		Runnables: []Runnable{
			{Name: "Run_MonitorSpeed", Trigger: TriggerTiming, PeriodMS: 20,
				Description: "Monitor speed every 20ms"},
			{Name: "Run_DiagHandler", Trigger: TriggerTiming, PeriodMS: 0,
				Description: "Event-triggered diagnostic handler"},
		},
	})
	tester := *p.AddComponent(SoftwareComponent{
		Name: "Swc_DiagTester", Description: "Diagnostic tester component (client)",
		Ports: []Port{{Name: "Rc_DiagService", Direction: Required, InterfaceUID: ifDiag,
			Description: "Calls diagnostic services"}},
		Runnables: []Runnable{{Name: "Run_DiagRequest", Trigger: TriggerTiming, PeriodMS: 100,
			Description: "Periodic diagnostic request"}},
	})

	p.AddConnection(PortConnection{
		Name:             "Conn_VehicleSpeed",
		ProviderSwcUID:   sensor.UID,
		ProviderPortUID:  sensor.Ports[0].UID,
		RequesterSwcUID:  monitor.UID,
		RequesterPortUID: monitor.Ports[0].UID,
		Description:      "Vehicle speed data connection",
	})
	p.AddConnection(PortConnection{
		Name:             "Conn_DiagService",
		ProviderSwcUID:   monitor.UID,
		ProviderPortUID:  monitor.Ports[1].UID,
		RequesterSwcUID:  tester.UID,
		RequesterPortUID: tester.Ports[0].UID,
		Description:      "Diagnostic service connection",
	})
	return p
}
