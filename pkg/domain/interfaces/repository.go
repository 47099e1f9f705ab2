package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Season() SeasonRepository
	Field() FieldRepository
	Team() TeamRepository
	News() NewsRepository
	Category() CategoryRepository
	Partner() PartnerRepository
	Contact() ContactRepository
	User() UserRepository
	VK() VKRepository
	Archive() ArchiveRepository

	Close() error
}
