package user

// Capability is a named action checked by Can.
type Capability string

const (
	CapabilityAttendanceClock   Capability = "attendance.clock"
	CapabilityAttendanceViewAll Capability = "attendance.view_all"
	CapabilityBranchManage      Capability = "branch.manage"
	CapabilityCampaignManage    Capability = "campaign.manage"
	CapabilityCampaignSend      Capability = "campaign.send"
)

// RoleCapabilities maps roles to the capabilities they hold without extra privileges.
var RoleCapabilities = map[Role][]Capability{
	RoleSuperAdmin: {
		CapabilityAttendanceClock,
		CapabilityAttendanceViewAll,
		CapabilityBranchManage,
		CapabilityCampaignManage,
		CapabilityCampaignSend,
	},
	RoleCompanyAdmin: {
		CapabilityAttendanceClock,
		CapabilityAttendanceViewAll,
		CapabilityBranchManage,
		CapabilityCampaignManage,
		CapabilityCampaignSend,
	},
	RoleRecruiter: {
		CapabilityAttendanceClock,
		CapabilityCampaignManage,
		CapabilityCampaignSend,
	},
	RoleStaff: {
		CapabilityAttendanceClock,
	},
	RoleUser: {},
}

// Can reports whether the identity holds capability, either through its role
// or through a privilege string equal to the capability name.
func Can(identity Identity, capability Capability) bool {
	for _, c := range RoleCapabilities[identity.Role] {
		if c == capability {
			return true
		}
	}
	return identity.HasPrivilege(string(capability))
}
