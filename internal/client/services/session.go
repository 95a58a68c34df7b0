package services

// SessionState is service state tied to the signed-in user. AuthService
// resets it on logout.
type SessionState interface {
	reset()
}

// reset keeps the fund names, which do not depend on the user.
func (s *CommissionService) reset() {
	s.UserFunds = nil
	s.Commission = nil
	s.Commissions = nil
	s.CommissionFunds = nil
	s.CommissionLabels = nil
	s.ChosenCommissionFundsLabels = nil
}

func (s *AssociationService) reset() {
	s.NewAssociations = nil
	s.ManagedAssociations = nil
}

func (s *UserAssociationService) reset() {
	s.UserAssociations = nil
	s.NewAssociations = nil
	s.AssociationMembers = nil
}

func (s *UserGroupService) reset() {
	s.NewGroups = nil
	s.NewCommissions = nil
}

func (s *DocumentService) reset() {
	s.DocumentUploads = nil
	s.ProcessDocuments = nil
}
