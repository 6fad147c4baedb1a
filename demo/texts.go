package demo

const (
	positiveComment = "Customer: The implementation of the new feature is excellent. Great job!"
	negativeComment = "There are several bugs in the new release, and the system crashes frequently."

	projectParticipants = " Dr. Emily Phillips from Healthcare Corp is working with developers from Very-cool-corporation Inc. to implement a new feature for electronic health records (EHR) module at their facilities in Berlin. "

	projectDescription = " The main goal of this project is to develop and implement a new feature for the electronic health records (EHR) system used by healthcare professionals at Healthcare Corp. The new feature aims to improve the efficiency of patient data entry by providing an intuitive user interface and integrating automated data verification processes. This will include several sub-tasks such as designing the user interface, developing back-end services for data validation, and conducting extensive testing to ensure the system's reliability and accuracy. Additionally, the project will involve training healthcare staff to effectively use the new feature and gathering feedback for further improvements. The timeline for the project spans six months, with key milestones set at the end of each month to track progress and address any arising issues. "

	part11Requirements = " The Part-11 regulation by the FDA requires comprehensive controls for electronic records and electronic signatures to ensure data integrity and security. This includes implementing access controls to limit system access to authorized individuals, ensuring that electronic records can be accurately and readily retrieved throughout the retention period, and providing a secure environment for the use of electronic signatures. Part-11 also mandates that systems ensure the authenticity, integrity, and, when appropriate, the confidentiality of electronic records, and to ensure that the signer cannot readily repudiate the signed record as not genuine. Additionally, the validation of system functionality and the ability to generate accurate and complete copies of records in both human-readable and electronic form are required. Regular system audits and documentation of operational and security controls are critical to compliance. "

	productDescription = " The latest version of the Very-cool-corporation product lifecycle management software includes an updated compliance module that ensures all documentation meets FDA and Part-11 regulations. Users can now automate the generation of audit reports, track changes in real-time, and maintain a complete version history. The new dashboard interface provides intuitive navigation and comprehensive data visualization tools. Integration with AWS cloud services allows seamless scalability and data security. Additionally, the system supports multi-user collaboration, enabling teams to work together efficiently across different locations. "

	webinarIntro = " This webinar will teach participants how to achieve seamless documentation and traceability for automated tests in compliance with IEC 62304 standards. "
)

var productQuestions = []string{
	"What does the compliance module ensure?",
	"What features does the dashboard interface provide?",
	"How does the system support multi-user collaboration?",
}

const webinarQuestion = "What is the theme of the webinar?"
