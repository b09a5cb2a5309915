package operations

const userFields = `id
      firstName
      lastName
      email
      icon`

const carFields = `id
      name
      model
      year
      licensePlate
      location
      pricePerDay
      available
      imageUrl`

const reservationFields = `id
      startDate
      endDate
      totalPrice
      status
      car {
        id
        name
        model
        location
        imageUrl
      }`

const groupFields = `id
      name
      inviteCode
      members {
        id
        name
        avatarId
      }`

const eventFields = `id
      groupId
      title
      startTime
      endTime
      isImportant
      isCommute
      note
      userId
      userName
      userAvatarId`

const getCurrentUserDoc = `query GetCurrentUser {
  me {
      ` + userFields + `
  }
}`

const loginDoc = `mutation Login($input: LoginInput!) {
  login(input: $input) {
    token
    user {
      ` + userFields + `
    }
  }
}`

const sendVerificationCodeDoc = `mutation SendVerificationCode($email: String!) {
  sendVerificationCode(email: $email)
}`

const signupDoc = `mutation Signup($input: SignupInput!, $vcode: String!) {
  signup(input: $input, vcode: $vcode) {
    token
    User {
      ` + userFields + `
    }
  }
}`

const getMyGroupsDoc = `query GetMyGroups {
  myGroups {
      ` + groupFields + `
  }
}`

const createGroupDoc = `mutation CreateGroup($input: CreateGroupInput!) {
  createGroup(input: $input) {
      ` + groupFields + `
  }
}`

const joinGroupDoc = `mutation JoinGroup($input: JoinGroupInput!) {
  joinGroup(input: $input) {
      ` + groupFields + `
  }
}`

const getGroupByInviteCodeDoc = `query GetGroupByInviteCode($inviteCode: String!) {
  groupByInviteCode(inviteCode: $inviteCode) {
      ` + groupFields + `
  }
}`

const getGroupEventsDoc = `query GetGroupEvents($input: GroupEventsInput!) {
  groupEvents(input: $input) {
      ` + eventFields + `
  }
}`

const createEventDoc = `mutation CreateEvent($input: CreateEventInput!) {
  createEvent(input: $input) {
      ` + eventFields + `
  }
}`

const deleteEventDoc = `mutation DeleteEvent($id: ID!) {
  deleteEvent(id: $id)
}`

const getCarsDoc = `query GetCars($filter: CarFilter, $limit: Int) {
  cars(filter: $filter, limit: $limit) {
      ` + carFields + `
  }
}`

const getAvailableCarsDoc = `query GetAvailableCars($limit: Int) {
  cars(filter: { available: true }, limit: $limit) {
      ` + carFields + `
  }
}`

const getCarDoc = `query GetCar($id: ID!) {
  car(id: $id) {
      ` + carFields + `
      owner {
        id
        name
      }
  }
}`

const createCarDoc = `mutation CreateCar($input: CreateCarInput!) {
  createCar(input: $input) {
      ` + carFields + `
  }
}`

const createReservationDoc = `mutation CreateReservation($input: CreateReservationInput!) {
  createReservation(input: $input) {
      id
      startDate
      endDate
      totalPrice
      status
  }
}`

const getReservationsDoc = `query GetReservations {
  myReservations {
      ` + reservationFields + `
  }
  carReservations {
      ` + reservationFields + `
  }
}`

const cancelReservationDoc = `mutation CancelReservation($id: ID!) {
  cancelReservation(id: $id) {
      id
      status
  }
}`

const getDashboardDataDoc = `query GetDashboardData {
  userStats {
      totalCars
      totalReservations
      upcomingReservations
  }
  myCars(limit: 3) {
      ` + carFields + `
  }
  myReservations(limit: 3) {
      ` + reservationFields + `
  }
}`

const updateProfileDoc = `mutation UpdateProfile($input: UpdateProfileInput!) {
  updateProfile(input: $input) {
      ` + userFields + `
  }
}`
